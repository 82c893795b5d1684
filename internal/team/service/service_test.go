package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/corpo_padel/internal/database/database"
	"github.com/festy23/corpo_padel/internal/database/testdb"
	teamModel "github.com/festy23/corpo_padel/internal/team/model"
	"github.com/festy23/corpo_padel/internal/team/repository"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	return New(repository.New(db), db, zap.NewNop().Sugar()), db
}

func fakeTeamRequest(faker *gofakeit.Faker) *teamModel.CreateTeamRequest {
	return &teamModel.CreateTeamRequest{
		Name:      faker.Gamertag(),
		Company:   faker.Company(),
		Player1ID: uint(faker.IntRange(1, 500)),
		Player2ID: uint(faker.IntRange(501, 1000)),
	}
}

func TestService_CreateTeam(t *testing.T) {
	ctx := context.Background()
	faker := gofakeit.New(42)

	t.Run("success trims names", func(t *testing.T) {
		svc, _ := newTestService(t)
		req := fakeTeamRequest(faker)
		req.Name = "  " + req.Name + " "

		team, err := svc.CreateTeam(ctx, req)
		require.NoError(t, err)
		assert.NotZero(t, team.ID)
		assert.Equal(t, team.Name, req.Name[2:len(req.Name)-1])
	})

	tests := []struct {
		name    string
		mutate  func(*teamModel.CreateTeamRequest)
		wantErr error
	}{
		{"blank name", func(r *teamModel.CreateTeamRequest) { r.Name = "   " }, teamModel.ErrInvalidTeamName},
		{"blank company", func(r *teamModel.CreateTeamRequest) { r.Company = "" }, teamModel.ErrInvalidCompany},
		{"same player twice", func(r *teamModel.CreateTeamRequest) { r.Player2ID = r.Player1ID }, teamModel.ErrSamePlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			req := fakeTeamRequest(faker)
			tt.mutate(req)

			team, err := svc.CreateTeam(ctx, req)
			assert.Nil(t, team)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("duplicate name", func(t *testing.T) {
		svc, _ := newTestService(t)
		req := fakeTeamRequest(faker)
		_, err := svc.CreateTeam(ctx, req)
		require.NoError(t, err)

		_, err = svc.CreateTeam(ctx, req)
		assert.ErrorIs(t, err, teamModel.ErrTeamExists)
	})
}

func TestService_ListTeams(t *testing.T) {
	ctx := context.Background()
	faker := gofakeit.New(7)
	svc, _ := newTestService(t)

	for i := 0; i < 3; i++ {
		req := fakeTeamRequest(faker)
		req.Name = req.Name + string(rune('a'+i))
		_, err := svc.CreateTeam(ctx, req)
		require.NoError(t, err)
	}

	resp, err := svc.ListTeams(ctx, teamModel.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Teams, 3)
}

func TestService_UpdatePlayers(t *testing.T) {
	ctx := context.Background()
	faker := gofakeit.New(9)

	t.Run("team without matches", func(t *testing.T) {
		svc, _ := newTestService(t)
		team, err := svc.CreateTeam(ctx, fakeTeamRequest(faker))
		require.NoError(t, err)

		updated, err := svc.UpdatePlayers(ctx, team.ID, &teamModel.UpdatePlayersRequest{Player1ID: 2001, Player2ID: 2002})
		require.NoError(t, err)
		assert.Equal(t, uint(2001), updated.Player1ID)
		assert.Equal(t, uint(2002), updated.Player2ID)
	})

	t.Run("team with an upcoming match is locked", func(t *testing.T) {
		svc, db := newTestService(t)
		a, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{Name: "A", Company: "Acme", Player1ID: 1, Player2ID: 2})
		require.NoError(t, err)
		b, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{Name: "B", Company: "Globex", Player1ID: 3, Player2ID: 4})
		require.NoError(t, err)
		scheduleMatch(t, db, a.ID, b.ID, "UPCOMING")

		_, err = svc.UpdatePlayers(ctx, a.ID, &teamModel.UpdatePlayersRequest{Player1ID: 5, Player2ID: 6})
		assert.ErrorIs(t, err, teamModel.ErrTeamLocked)
	})

	t.Run("locked team keeps its players", func(t *testing.T) {
		svc, db := newTestService(t)
		a, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{Name: "A", Company: "Acme", Player1ID: 1, Player2ID: 2})
		require.NoError(t, err)
		b, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{Name: "B", Company: "Globex", Player1ID: 3, Player2ID: 4})
		require.NoError(t, err)
		scheduleMatch(t, db, a.ID, b.ID, "COMPLETED")

		_, err = svc.UpdatePlayers(ctx, a.ID, &teamModel.UpdatePlayersRequest{Player1ID: 5, Player2ID: 6})
		require.ErrorIs(t, err, teamModel.ErrTeamLocked)

		got, err := svc.GetTeam(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, uint(1), got.Player1ID)
		assert.Equal(t, uint(2), got.Player2ID)
	})

	t.Run("same player twice", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdatePlayers(ctx, 1, &teamModel.UpdatePlayersRequest{Player1ID: 5, Player2ID: 5})
		assert.ErrorIs(t, err, teamModel.ErrSamePlayer)
	})

	t.Run("unknown team", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdatePlayers(ctx, 404, &teamModel.UpdatePlayersRequest{Player1ID: 5, Player2ID: 6})
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}

func TestService_DeleteTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("completed match locks the team", func(t *testing.T) {
		svc, db := newTestService(t)
		a, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{Name: "A", Company: "Acme", Player1ID: 1, Player2ID: 2})
		require.NoError(t, err)
		b, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{Name: "B", Company: "Globex", Player1ID: 3, Player2ID: 4})
		require.NoError(t, err)
		scheduleMatch(t, db, a.ID, b.ID, "COMPLETED")

		assert.ErrorIs(t, svc.DeleteTeam(ctx, b.ID), teamModel.ErrTeamLocked)
	})

	t.Run("only cancelled matches", func(t *testing.T) {
		svc, db := newTestService(t)
		a, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{Name: "A", Company: "Acme", Player1ID: 1, Player2ID: 2})
		require.NoError(t, err)
		b, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{Name: "B", Company: "Globex", Player1ID: 3, Player2ID: 4})
		require.NoError(t, err)
		scheduleMatch(t, db, a.ID, b.ID, "CANCELLED")

		require.NoError(t, svc.DeleteTeam(ctx, a.ID))
		_, err = svc.GetTeam(ctx, a.ID)
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})

	t.Run("unknown team", func(t *testing.T) {
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.DeleteTeam(ctx, 404), teamModel.ErrTeamNotFound)
	})
}

func scheduleMatch(t *testing.T, db *gorm.DB, team1, team2 uint, status string) {
	t.Helper()
	require.NoError(t, db.Exec("INSERT INTO events (event_date, start_time) VALUES ('2030-01-10', '18:00')").Error)
	score := interface{}(nil)
	if status == "COMPLETED" {
		score = "6-4, 6-4"
	}
	require.NoError(t, db.Exec(
		`INSERT INTO matches (event_id, match_date, start_time, court_number, team1_id, team2_id, status, score_team1, score_team2)
		 VALUES ((SELECT MAX(id) FROM events), '2030-01-10', '18:00', 1, ?, ?, ?, ?, ?)`,
		team1, team2, status, score, score,
	).Error)
}

func TestService_WritesRetryTransientFailures(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService(t)
	team, err := svc.CreateTeam(ctx, &teamModel.CreateTeamRequest{Name: "A", Company: "Acme", Player1ID: 1, Player2ID: 2})
	require.NoError(t, err)

	failures := 1
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:locked", func(tx *gorm.DB) {
		if failures > 0 {
			failures--
			_ = tx.AddError(errors.New("database is locked"))
		}
	}))

	updated, err := svc.UpdatePlayers(ctx, team.ID, &teamModel.UpdatePlayersRequest{Player1ID: 7, Player2ID: 8})
	require.NoError(t, err)
	assert.Equal(t, uint(7), updated.Player1ID)
	assert.Zero(t, failures)

	failures = 10
	_, err = svc.UpdatePlayers(ctx, team.ID, &teamModel.UpdatePlayersRequest{Player1ID: 9, Player2ID: 10})
	assert.ErrorIs(t, err, database.ErrStorage)
}
