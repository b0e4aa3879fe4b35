package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/scoresync/internal/domain/competition"
	competitionmock "github.com/riskibarqy/scoresync/internal/mocks/domain/competition"
	basecache "github.com/riskibarqy/scoresync/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestCompetitionRepository_GetByIDsLoadsOnlyMissing(t *testing.T) {
	t.Parallel()

	next := competitionmock.NewRepository(t)
	next.On("GetByIDs", mock.Anything, []int64{2021, 2001}).
		Return(map[int64]competition.Competition{
			2021: {ID: 2021, Name: "Premier League"},
			2001: {ID: 2001, Name: "UEFA Champions League"},
		}, nil).
		Once()
	next.On("GetByIDs", mock.Anything, []int64{2014}).
		Return(map[int64]competition.Competition{2014: {ID: 2014, Name: "Primera Division"}}, nil).
		Once()

	repo := NewCompetitionRepository(next, basecache.NewStore[competition.Competition](time.Minute))
	ctx := context.Background()

	if _, err := repo.GetByIDs(ctx, []int64{2021, 2001}); err != nil {
		t.Fatalf("first load: %v", err)
	}
	got, err := repo.GetByIDs(ctx, []int64{2021, 2014})
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(got) != 2 || got[2014].Name != "Primera Division" || got[2021].Name != "Premier League" {
		t.Fatalf("unexpected competitions: %+v", got)
	}
}

func TestCompetitionRepository_UpdateEvictsEntry(t *testing.T) {
	t.Parallel()

	next := competitionmock.NewRepository(t)
	next.On("GetByIDs", mock.Anything, []int64{2021}).
		Return(map[int64]competition.Competition{2021: {ID: 2021, Name: "Premier League"}}, nil).
		Twice()
	next.On("UpdateTotalMatchdays", mock.Anything, int64(2021), 38).Return(nil).Once()

	repo := NewCompetitionRepository(next, basecache.NewStore[competition.Competition](time.Minute))
	ctx := context.Background()

	if _, err := repo.GetByIDs(ctx, []int64{2021}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := repo.UpdateTotalMatchdays(ctx, 2021, 38); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := repo.GetByIDs(ctx, []int64{2021}); err != nil {
		t.Fatalf("reload: %v", err)
	}
}
