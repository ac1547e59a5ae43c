package form

import (
	"context"
	"errors"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/offer-board/internal/clients/offers"
	"github.com/maxaizer/offer-board/internal/domain/events"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

type mockCreator struct {
	mock.Mock
}

func (m *mockCreator) CreateOffer(ctx context.Context, draft models.OfferDraft) (int64, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(int64), args.Error(1)
}

func filledState(t *testing.T) State {
	state, err := New().SetText(UserName, "testname")
	require.NoError(t, err)
	state, err = state.SetOptionalInteger(Salary, "50000")
	require.NoError(t, err)
	return state
}

func Test_Submit_SuccessStoresIDAndKeepsDraft(t *testing.T) {
	state := filledState(t)
	state.Error = "stale error"

	creator := &mockCreator{}
	creator.On("CreateOffer", mock.Anything, state.Draft).Return(int64(42), nil).Once()

	next, err := state.Submit(context.Background(), creator)

	require.NoError(t, err)
	require.NotNil(t, next.LastOfferID)
	assert.Equal(t, int64(42), *next.LastOfferID)
	assert.Equal(t, state.Draft, next.Draft)
	assert.Empty(t, next.Error)
	creator.AssertExpectations(t)
}

func Test_Submit_NonSuccessSurfacesRawBody(t *testing.T) {
	state := filledState(t)

	creator := &mockCreator{}
	creator.On("CreateOffer", mock.Anything, mock.Anything).
		Return(int64(0), &offers.StatusError{StatusCode: 400, Body: "Invalid offer date"})

	next, err := state.Submit(context.Background(), creator)

	assert.Error(t, err)
	assert.Equal(t, "HTTP error, response not ok: Invalid offer date", next.Error)
	assert.Equal(t, state.Draft, next.Draft)
	assert.Nil(t, next.LastOfferID)
}

func Test_Submit_NetworkErrorKeepsPreviousID(t *testing.T) {
	state := filledState(t)
	previous := int64(7)
	state.LastOfferID = &previous

	creator := &mockCreator{}
	creator.On("CreateOffer", mock.Anything, mock.Anything).
		Return(int64(0), errors.New("error sending request: connection refused"))

	next, _ := state.Submit(context.Background(), creator)

	assert.Equal(t, "error sending request: connection refused", next.Error)
	assert.Equal(t, int64(7), *next.LastOfferID)
	assert.Equal(t, state.Draft, next.Draft)
}

func Test_Submitter_PublishesOnlyAcceptedOffers(t *testing.T) {
	bus := EventBus.New()
	var published []events.OfferSubmitted
	require.NoError(t, bus.Subscribe(events.OfferSubmittedTopic, func(event events.OfferSubmitted) {
		published = append(published, event)
	}))

	creator := &mockCreator{}
	creator.On("CreateOffer", mock.Anything, mock.Anything).Return(int64(0), errors.New("down")).Once()
	creator.On("CreateOffer", mock.Anything, mock.Anything).Return(int64(43), nil).Once()

	submitter, err := NewSubmitter(creator, bus)
	require.NoError(t, err)

	state := filledState(t)
	state = submitter.Submit(context.Background(), state)
	assert.Empty(t, published)
	assert.Equal(t, "down", state.Error)

	state = submitter.Submit(context.Background(), state)
	require.Len(t, published, 1)
	assert.Equal(t, int64(43), published[0].OfferID)
	assert.Equal(t, "testname", published[0].Draft.UserName)
}

func Test_NewSubmitter_RequiresDependencies(t *testing.T) {
	_, err := NewSubmitter(nil, EventBus.New())
	assert.Error(t, err)

	_, err = NewSubmitter(&mockCreator{}, nil)
	assert.Error(t, err)
}
