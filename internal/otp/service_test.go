package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/gucci1909/regis/internal/config"
	"github.com/gucci1909/regis/pkg/apperr"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockRepository) Insert(ctx context.Context, v *Verification) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*Verification, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Verification), args.Error(1)
}

func (m *MockRepository) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockSender is a mock implementation of notify.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendOTP(ctx context.Context, email, phone, code string) error {
	args := m.Called(ctx, email, phone, code)
	return args.Error(0)
}

func testOTPConfig() config.OTPConfig {
	return config.OTPConfig{TTL: 5 * time.Minute, DevCode: "123456"}
}

func TestIssueSupersedesPriorCodes(t *testing.T) {
	mockRepo := new(MockRepository)
	mockSender := new(MockSender)
	service := NewService(mockRepo, mockSender, testOTPConfig(), config.ModeDevelopment, zap.NewNop())

	ctx := context.Background()

	var stored *Verification
	mockRepo.On("DeleteByEmail", ctx, "a@x.com").Return(nil)
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*otp.Verification")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*Verification) }).
		Return(nil)
	mockSender.On("SendOTP", ctx, "a@x.com", "+1555", "123456").Return(nil)

	err := service.Issue(ctx, "a@x.com", "+1555")

	require.NoError(t, err)
	require.NotNil(t, stored)
	// Development mode always issues the fixed code.
	assert.Equal(t, "123456", stored.OTP)
	assert.False(t, stored.Verified)
	assert.WithinDuration(t, time.Now().UTC().Add(5*time.Minute), stored.ExpiresAt, 2*time.Second)

	mockRepo.AssertExpectations(t)
	mockSender.AssertExpectations(t)
}

func TestIssueRequiresEmailAndPhone(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockSender), testOTPConfig(), config.ModeDevelopment, zap.NewNop())

	err := service.Issue(context.Background(), "a@x.com", "")

	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestIssueSurvivesDeliveryFailure(t *testing.T) {
	mockRepo := new(MockRepository)
	mockSender := new(MockSender)
	service := NewService(mockRepo, mockSender, testOTPConfig(), config.ModeDevelopment, zap.NewNop())

	mockRepo.On("DeleteByEmail", mock.Anything, "a@x.com").Return(nil)
	mockRepo.On("Insert", mock.Anything, mock.AnythingOfType("*otp.Verification")).Return(nil)
	mockSender.On("SendOTP", mock.Anything, "a@x.com", "+1555", "123456").Return(assert.AnError)

	err := service.Issue(context.Background(), "a@x.com", "+1555")

	require.NoError(t, err, "the stored code stays valid even when delivery fails")
}

func TestVerifyConsumesCodeOnce(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockSender), testOTPConfig(), config.ModeDevelopment, zap.NewNop())

	ctx := context.Background()
	record := &Verification{
		ID:        primitive.NewObjectID(),
		Email:     "a@x.com",
		Phone:     "+1555",
		OTP:       "123456",
		ExpiresAt: time.Now().UTC().Add(4 * time.Minute),
	}

	mockRepo.On("FindByEmailAndCode", ctx, "a@x.com", "123456").Return(record, nil).Once()
	mockRepo.On("MarkVerified", ctx, record.ID).Return(nil).Once()

	require.NoError(t, service.Verify(ctx, "a@x.com", "123456"))

	// Second attempt with the same code: the record is now consumed.
	consumed := *record
	consumed.Verified = true
	mockRepo.On("FindByEmailAndCode", ctx, "a@x.com", "123456").Return(&consumed, nil).Once()

	err := service.Verify(ctx, "a@x.com", "123456")
	assert.ErrorIs(t, err, ErrAlreadyUsed)

	mockRepo.AssertExpectations(t)
}

func TestVerifyUnknownCode(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockSender), testOTPConfig(), config.ModeDevelopment, zap.NewNop())

	mockRepo.On("FindByEmailAndCode", mock.Anything, "a@x.com", "999999").Return(nil, nil)

	err := service.Verify(context.Background(), "a@x.com", "999999")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyExpiredCode(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockSender), testOTPConfig(), config.ModeDevelopment, zap.NewNop())

	record := &Verification{
		ID:        primitive.NewObjectID(),
		Email:     "a@x.com",
		OTP:       "123456",
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	mockRepo.On("FindByEmailAndCode", mock.Anything, "a@x.com", "123456").Return(record, nil)

	err := service.Verify(context.Background(), "a@x.com", "123456")
	assert.ErrorIs(t, err, ErrExpired)
	mockRepo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
}

func TestVerifyRequiresEmailAndCode(t *testing.T) {
	service := NewService(new(MockRepository), new(MockSender), testOTPConfig(), config.ModeDevelopment, zap.NewNop())

	err := service.Verify(context.Background(), "", "123456")
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}
