package services

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/entities"
	"asset-system/pkg/constants"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"
)

type termTestEnv struct {
	termRepo      *MockTermRepository
	equipmentRepo *MockEquipmentRepository
	historyRepo   *MockHistoryRepository
	storage       *fakeFileStorage
	svc           *TermService
}

func newTermTestEnv() *termTestEnv {
	termRepo := new(MockTermRepository)
	equipmentRepo := new(MockEquipmentRepository)
	historyRepo := new(MockHistoryRepository)
	storage := &fakeFileStorage{}

	svc := NewTermService(termRepo, equipmentRepo, historyRepo, &fakeTxManager{}, storage, zap.NewNop())
	return &termTestEnv{
		termRepo:      termRepo,
		equipmentRepo: equipmentRepo,
		historyRepo:   historyRepo,
		storage:       storage,
		svc:           svc,
	}
}

func sampleTerm(status string) *entities.ResponsibilityTerm {
	return &entities.ResponsibilityTerm{
		ID:          7,
		EquipmentID: 1,
		Responsible: "А. Каримов",
		TermDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:      status,
	}
}

func TestCreateTerm_DefaultsToDraftAndLogsCreation(t *testing.T) {
	env := newTermTestEnv()

	env.equipmentRepo.On("FindEquipment", mock.Anything, uint64(1)).Return(sampleEquipment(), nil)
	env.termRepo.On("CreateTerm", mock.Anything, mock.Anything, mock.Anything).Return(uint64(7), nil)
	env.historyRepo.On("CreateInTx", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1), nil)
	env.termRepo.On("FindTerm", mock.Anything, uint64(7)).Return(sampleTerm(constants.TermStatusDraft), nil)

	res, err := env.svc.CreateTerm(context.Background(), dto.CreateTermDTO{
		EquipmentID: 1,
		Responsible: "А. Каримов",
		TermDate:    "2025-03-01",
	})

	require.NoError(t, err)
	assert.Equal(t, constants.TermStatusDraft, res.Status)

	require.Len(t, env.historyRepo.entries, 1)
	entry := env.historyRepo.entries[0]
	assert.Equal(t, constants.EntityTypeTerm, entry.EntityType)
	assert.Equal(t, constants.ChangeTypeCreated, entry.ChangeType)
	require.NotNil(t, entry.EquipmentID)
	assert.Equal(t, uint64(1), *entry.EquipmentID)
	assert.Empty(t, env.storage.saved)
}

func TestCreateTerm_SavesDecodedPdf(t *testing.T) {
	env := newTermTestEnv()

	env.equipmentRepo.On("FindEquipment", mock.Anything, uint64(1)).Return(sampleEquipment(), nil)

	var created *entities.ResponsibilityTerm
	env.termRepo.On("CreateTerm", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			created = args.Get(2).(*entities.ResponsibilityTerm)
		}).
		Return(uint64(7), nil)
	env.historyRepo.On("CreateInTx", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1), nil)
	env.termRepo.On("FindTerm", mock.Anything, uint64(7)).Return(sampleTerm(constants.TermStatusDraft), nil)

	encoded := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 test"))
	_, err := env.svc.CreateTerm(context.Background(), dto.CreateTermDTO{
		EquipmentID: 1,
		Responsible: "А. Каримов",
		TermDate:    "2025-03-01",
		PdfBase64:   &encoded,
	})

	require.NoError(t, err)
	require.Len(t, env.storage.saved, 1)
	assert.Contains(t, env.storage.saved[0], "terms/termo_1_")
	require.NotNil(t, created)
	require.NotNil(t, created.PdfURL)
	assert.Equal(t, env.storage.saved[0], *created.PdfURL)
}

func TestCreateTerm_RejectsBadBase64(t *testing.T) {
	env := newTermTestEnv()

	env.equipmentRepo.On("FindEquipment", mock.Anything, uint64(1)).Return(sampleEquipment(), nil)

	_, err := env.svc.CreateTerm(context.Background(), dto.CreateTermDTO{
		EquipmentID: 1,
		Responsible: "А. Каримов",
		TermDate:    "2025-03-01",
		PdfBase64:   utils.ToPtr("&&& не base64 &&&"),
	})

	require.Error(t, err)
	env.termRepo.AssertNotCalled(t, "CreateTerm", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, env.storage.saved)
}

func TestUpdateTermStatus_RecordsActualPriorStatus(t *testing.T) {
	env := newTermTestEnv()

	env.termRepo.On("FindTerm", mock.Anything, uint64(7)).Return(sampleTerm(constants.TermStatusSent), nil)
	env.termRepo.On("UpdateStatus", mock.Anything, mock.Anything, uint64(7), constants.TermStatusSigned).Return(nil)
	env.historyRepo.On("CreateInTx", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1), nil)

	_, err := env.svc.UpdateStatus(context.Background(), 7, dto.UpdateTermStatusDTO{
		Status: constants.TermStatusSigned,
	})
	require.NoError(t, err)

	require.Len(t, env.historyRepo.entries, 1)
	entry := env.historyRepo.entries[0]
	assert.Equal(t, constants.ChangeTypeStatusChanged, entry.ChangeType)
	assert.Equal(t, constants.TermStatusSent, *entry.OldValue)
	assert.Equal(t, constants.TermStatusSigned, *entry.NewValue)
}

func TestUpdateTermStatus_SameStatusWritesNothing(t *testing.T) {
	env := newTermTestEnv()

	env.termRepo.On("FindTerm", mock.Anything, uint64(7)).Return(sampleTerm(constants.TermStatusSigned), nil)

	res, err := env.svc.UpdateStatus(context.Background(), 7, dto.UpdateTermStatusDTO{
		Status: constants.TermStatusSigned,
	})

	require.NoError(t, err)
	assert.Equal(t, constants.TermStatusSigned, res.Status)
	env.termRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	env.historyRepo.AssertNotCalled(t, "CreateInTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachPdf_ReplacesBlobAndLogsHistory(t *testing.T) {
	env := newTermTestEnv()

	term := sampleTerm(constants.TermStatusSent)
	term.PdfURL = utils.ToPtr("terms/termo_1_100.pdf")
	env.termRepo.On("FindTerm", mock.Anything, uint64(7)).Return(term, nil)
	env.termRepo.On("UpdatePdfURL", mock.Anything, mock.Anything, uint64(7), mock.Anything).Return(nil)
	env.historyRepo.On("CreateInTx", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1), nil)

	encoded := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 signed"))
	_, err := env.svc.AttachPdf(context.Background(), 7, dto.AttachTermPdfDTO{PdfBase64: encoded})
	require.NoError(t, err)

	require.Len(t, env.storage.saved, 1)
	assert.Contains(t, env.storage.saved[0], "terms/termo_1_")
	// Прежний PDF убирается только после коммита.
	assert.Equal(t, []string{"terms/termo_1_100.pdf"}, env.storage.deleted)

	require.Len(t, env.historyRepo.entries, 1)
	entry := env.historyRepo.entries[0]
	assert.Equal(t, constants.ChangeTypeFileAttached, entry.ChangeType)
	assert.Equal(t, "terms/termo_1_100.pdf", *entry.OldValue)
	assert.Equal(t, env.storage.saved[0], *entry.NewValue)
}

func TestAttachPdf_RejectsBadBase64(t *testing.T) {
	env := newTermTestEnv()

	env.termRepo.On("FindTerm", mock.Anything, uint64(7)).
		Return(sampleTerm(constants.TermStatusSent), nil)

	_, err := env.svc.AttachPdf(context.Background(), 7, dto.AttachTermPdfDTO{PdfBase64: "&&&"})

	require.Error(t, err)
	env.termRepo.AssertNotCalled(t, "UpdatePdfURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, env.storage.saved)
}

func TestDeleteTerm_RemovesPdfAfterCommit(t *testing.T) {
	env := newTermTestEnv()

	term := sampleTerm(constants.TermStatusSigned)
	term.PdfURL = utils.ToPtr("terms/termo_1_100.pdf")
	env.termRepo.On("FindTerm", mock.Anything, uint64(7)).Return(term, nil)
	env.termRepo.On("DeleteTerm", mock.Anything, mock.Anything, uint64(7)).Return(nil)
	env.historyRepo.On("CreateInTx", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1), nil)

	err := env.svc.DeleteTerm(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, []string{"terms/termo_1_100.pdf"}, env.storage.deleted)
	require.Len(t, env.historyRepo.entries, 1)
	assert.Equal(t, constants.ChangeTypeDeleted, env.historyRepo.entries[0].ChangeType)
}

func TestGetByEquipmentID_UnknownEquipment(t *testing.T) {
	env := newTermTestEnv()

	env.equipmentRepo.On("FindEquipment", mock.Anything, uint64(99)).Return(nil, apperrors.ErrNotFound)

	_, err := env.svc.GetByEquipmentID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
