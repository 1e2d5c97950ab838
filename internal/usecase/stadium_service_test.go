package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/grounder-api/internal/domain/source"
	"github.com/riskibarqy/grounder-api/internal/domain/stadium"
	usecasemock "github.com/riskibarqy/grounder-api/internal/mocks/usecase"
)

func TestStadiumService_GlobalStadiums_DefaultsAndDedup(t *testing.T) {
	t.Parallel()

	wikidata := usecasemock.NewWikidataSource(t)
	service, err := NewStadiumService(wikidata, nil, testLogger())
	require.NoError(t, err)

	wikidata.On("Stadiums", mock.Anything, 200, 0, 5000).
		Return([]stadium.Stadium{
			{ID: "WD:Q1", Source: source.Wikidata, Name: strPtr("Wembley"), Capacity: intPtr(90000)},
			{ID: "WD:Q2", Source: source.Wikidata, Name: strPtr("Anfield"), Capacity: intPtr(61000)},
			{ID: "WD:Q1", Source: source.Wikidata, Name: strPtr("Wembley"), Capacity: intPtr(86000)},
		}, nil).
		Once()

	got, err := service.GlobalStadiums(context.Background(), 0, 0, 0)
	require.NoError(t, err)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "WD:Q1", got.Items[0].ID)
	assert.Equal(t, 90000, *got.Items[0].Capacity)
	assert.Equal(t, map[string]int{"wikidata": 2}, got.Sources)
}

func TestStadiumService_GlobalStadiums_Errors(t *testing.T) {
	t.Parallel()

	wikidata := usecasemock.NewWikidataSource(t)
	service, err := NewStadiumService(wikidata, nil, testLogger())
	require.NoError(t, err)

	if _, err := service.GlobalStadiums(context.Background(), 10, -5, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got=%v", err)
	}

	wikidata.On("Stadiums", mock.Anything, 500, 0, 20000).Return(nil, errors.New("query timeout")).Once()
	if _, err := service.GlobalStadiums(context.Background(), 900, 0, 20000); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got=%v", err)
	}
}
