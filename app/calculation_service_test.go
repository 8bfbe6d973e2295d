package app

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gohaz/adapters/calc"
	"gohaz/domain/core"
	"gohaz/domain/hazard"
	"gohaz/domain/imt"
	"gohaz/internal/testkit"
	"gohaz/ports"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, calc *hazard.Calculation) error {
	args := m.Called(ctx, calc)
	return args.Error(0)
}

func (m *mockRepository) GetByID(ctx context.Context, id core.CalculationID) (*hazard.Calculation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hazard.Calculation), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, calc *hazard.Calculation) error {
	args := m.Called(ctx, calc)
	return args.Error(0)
}

func (m *mockRepository) List(ctx context.Context, limit, offset int) ([]*hazard.Calculation, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*hazard.Calculation), args.Error(1)
}

func (m *mockRepository) SaveCurves(ctx context.Context, id core.CalculationID, levels imt.Levels, curves hazard.CurveSet) error {
	args := m.Called(ctx, id, levels, curves)
	return args.Error(0)
}

func (m *mockRepository) GetCurves(ctx context.Context, id core.CalculationID) (imt.Levels, hazard.CurveSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(imt.Levels), args.Get(1).(hazard.CurveSet), args.Error(2)
}

func serviceInputs(model ports.GroundMotionModel) calc.Inputs {
	return calc.Inputs{
		Sources:  []ports.Source{testkit.Source("s1", -math.Log(0.9))},
		Sites:    testkit.Sites(2),
		Levels:   imt.Levels{imt.PGA: {0.1, 0.2}},
		TimeSpan: 1,
		GSIMs:    testkit.Registry(model),
	}
}

func TestCalculationServiceRun(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*hazard.Calculation")).Return(nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*hazard.Calculation")).Return(nil)
	repo.On("SaveCurves", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	service := NewCalculationService(repo, 1)
	result, err := service.Run(context.Background(), serviceInputs(&testkit.StubGSIM{PoE: 0.5}))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, hazard.CalculationComplete, result.Calculation.Status)
	assert.Equal(t, 2, result.Calculation.NumSites)
	assert.Equal(t, 1, result.Calculation.NumSources)
	assert.InDelta(t, 1-math.Pow(0.9, 0.5), result.Curves[imt.PGA].At(0, 0), 1e-12)
	repo.AssertExpectations(t)
}

func TestCalculationServiceRunWithoutRepository(t *testing.T) {
	service := NewCalculationService(nil, 1)
	result, err := service.Run(context.Background(), serviceInputs(&testkit.StubGSIM{PoE: 0.5}))
	require.NoError(t, err)
	assert.NotNil(t, result.Curves[imt.PGA])
}

func TestCalculationServiceRecordsFailure(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *hazard.Calculation) bool {
		return c.Status == hazard.CalculationFailed && c.ErrorMessage != ""
	})).Return(nil)

	boom := errors.New("model blew up")
	service := NewCalculationService(repo, 1)
	result, err := service.Run(context.Background(), serviceInputs(&testkit.StubGSIM{ExceedErr: boom}))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "SaveCurves", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculationServiceRejectsBadInputsBeforePersisting(t *testing.T) {
	repo := new(mockRepository)

	in := serviceInputs(&testkit.StubGSIM{PoE: 0.5})
	in.TruncationLevel = -1

	service := NewCalculationService(repo, 1)
	_, err := service.Run(context.Background(), in)
	assert.ErrorIs(t, err, core.ErrBadTruncation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCalculationServicePropagatesCreateFailure(t *testing.T) {
	repo := new(mockRepository)
	dbErr := errors.New("connection refused")
	repo.On("Create", mock.Anything, mock.Anything).Return(dbErr)

	service := NewCalculationService(repo, 1)
	_, err := service.Run(context.Background(), serviceInputs(&testkit.StubGSIM{PoE: 0.5}))
	assert.ErrorIs(t, err, dbErr)
}
