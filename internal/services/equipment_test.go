package services

import (
	"context"
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

func newEquipmentServiceForTest(
	equipmentRepo *MockEquipmentRepository,
	attachmentRepo *MockAttachmentRepository,
	termRepo *MockTermRepository,
	historyRepo *MockHistoryRepository,
	storage *fakeFileStorage,
) *EquipmentService {
	return NewEquipmentService(
		equipmentRepo, attachmentRepo, termRepo, historyRepo,
		newFakeCache(), &fakeTxManager{}, storage,
		"TOP", time.Minute, zap.NewNop(),
	)
}

func sampleEquipment() *entities.Equipment {
	return &entities.Equipment{
		ID:              1,
		AssetNumber:     "TOP-0001",
		Description:     "Ноутбук для разработки",
		Status:          constants.EquipmentStatusActive,
		Location:        "Головной офис",
		Responsible:     "А. Каримов",
		AcquisitionDate: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC),
		Value:           1250,
	}
}

func TestCreateEquipment_AllocatesNextNumber(t *testing.T) {
	equipmentRepo := new(MockEquipmentRepository)
	historyRepo := new(MockHistoryRepository)
	svc := newEquipmentServiceForTest(equipmentRepo, new(MockAttachmentRepository), new(MockTermRepository), historyRepo, &fakeFileStorage{})

	equipmentRepo.On("HighestAssetNumber", mock.Anything, "TOP").Return("TOP-0007", nil)
	equipmentRepo.On("CreateEquipment", mock.Anything, mock.Anything, mock.Anything).Return(uint64(42), nil)
	historyRepo.On("CreateInTx", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1), nil)

	created := sampleEquipment()
	created.ID = 42
	created.AssetNumber = "TOP-0008"
	equipmentRepo.On("FindEquipment", mock.Anything, uint64(42)).Return(created, nil)

	res, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		Description:     "Ноутбук для разработки",
		Location:        "Головной офис",
		Responsible:     "А. Каримов",
		AcquisitionDate: "2024-02-12",
		Value:           1250,
	})

	require.NoError(t, err)
	assert.Equal(t, "TOP-0008", res.AssetNumber)

	require.Len(t, historyRepo.entries, 1)
	entry := historyRepo.entries[0]
	assert.Equal(t, constants.ChangeTypeCreated, entry.ChangeType)
	assert.Equal(t, constants.EntityTypeEquipment, entry.EntityType)
	assert.Equal(t, uint64(42), entry.EntityID)
	require.NotNil(t, entry.EquipmentID)
	assert.Equal(t, uint64(42), *entry.EquipmentID)
	assert.Equal(t, constants.DefaultUserName, entry.UserName)
}

func TestCreateEquipment_SuppliedNumberTaken(t *testing.T) {
	equipmentRepo := new(MockEquipmentRepository)
	historyRepo := new(MockHistoryRepository)
	svc := newEquipmentServiceForTest(equipmentRepo, new(MockAttachmentRepository), new(MockTermRepository), historyRepo, &fakeFileStorage{})

	equipmentRepo.On("FindByAssetNumber", mock.Anything, "TOP-0005").Return(sampleEquipment(), nil)

	_, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		AssetNumber:     utils.ToPtr("top-0005"),
		Description:     "Дубликат",
		Location:        "Офис",
		Responsible:     "Кто-то",
		AcquisitionDate: "2024-01-01",
	})

	assert.ErrorIs(t, err, apperrors.ErrAssetNumberTaken)
	equipmentRepo.AssertNotCalled(t, "CreateEquipment", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateEquipment_MalformedNumber(t *testing.T) {
	equipmentRepo := new(MockEquipmentRepository)
	svc := newEquipmentServiceForTest(equipmentRepo, new(MockAttachmentRepository), new(MockTermRepository), new(MockHistoryRepository), &fakeFileStorage{})

	_, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		AssetNumber:     utils.ToPtr("TOP-12"),
		Description:     "Неверный номер",
		Location:        "Офис",
		Responsible:     "Кто-то",
		AcquisitionDate: "2024-01-01",
	})

	assert.ErrorIs(t, err, apperrors.ErrAssetNumberMalformed)
}

func TestResolveAssetNumber_NormalizesSupplied(t *testing.T) {
	equipmentRepo := new(MockEquipmentRepository)
	svc := newEquipmentServiceForTest(equipmentRepo, new(MockAttachmentRepository), new(MockTermRepository), new(MockHistoryRepository), &fakeFileStorage{})

	equipmentRepo.On("FindByAssetNumber", mock.Anything, "TOP-0009").Return(nil, apperrors.ErrNotFound)

	got, err := svc.ResolveAssetNumber(context.Background(), utils.ToPtr("  top-0009 "))
	require.NoError(t, err)
	assert.Equal(t, "TOP-0009", got)
}

func TestUpdateEquipment_WritesHistoryPerChange(t *testing.T) {
	equipmentRepo := new(MockEquipmentRepository)
	historyRepo := new(MockHistoryRepository)
	svc := newEquipmentServiceForTest(equipmentRepo, new(MockAttachmentRepository), new(MockTermRepository), historyRepo, &fakeFileStorage{})

	equipmentRepo.On("FindEquipment", mock.Anything, uint64(1)).Return(sampleEquipment(), nil)
	equipmentRepo.On("UpdateEquipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	historyRepo.On("CreateInTx", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1), nil)

	_, err := svc.UpdateEquipment(context.Background(), 1, dto.UpdateEquipmentDTO{
		Status:   utils.ToPtr(constants.EquipmentStatusDeactivated),
		Location: utils.ToPtr("Склад"),
	})
	require.NoError(t, err)

	require.Len(t, historyRepo.entries, 2)

	byField := map[string]entities.HistoryEntry{}
	for _, e := range historyRepo.entries {
		byField[*e.Field] = e
	}

	statusEntry := byField["Status"]
	assert.Equal(t, constants.ChangeTypeStatusChanged, statusEntry.ChangeType)
	assert.Equal(t, constants.EquipmentStatusActive, *statusEntry.OldValue)
	assert.Equal(t, constants.EquipmentStatusDeactivated, *statusEntry.NewValue)

	locationEntry := byField["Location"]
	assert.Equal(t, constants.ChangeTypeEdited, locationEntry.ChangeType)
	assert.Equal(t, "Головной офис", *locationEntry.OldValue)
	assert.Equal(t, "Склад", *locationEntry.NewValue)
}

func TestUpdateEquipment_NoChangesWritesNothing(t *testing.T) {
	equipmentRepo := new(MockEquipmentRepository)
	historyRepo := new(MockHistoryRepository)
	svc := newEquipmentServiceForTest(equipmentRepo, new(MockAttachmentRepository), new(MockTermRepository), historyRepo, &fakeFileStorage{})

	current := sampleEquipment()
	equipmentRepo.On("FindEquipment", mock.Anything, uint64(1)).Return(current, nil)

	res, err := svc.UpdateEquipment(context.Background(), 1, dto.UpdateEquipmentDTO{
		Location: utils.ToPtr(current.Location),
	})

	require.NoError(t, err)
	assert.Equal(t, current.Location, res.Location)
	equipmentRepo.AssertNotCalled(t, "UpdateEquipment", mock.Anything, mock.Anything, mock.Anything)
	historyRepo.AssertNotCalled(t, "CreateInTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterMaintenance_SingleEntryWithPriorStatus(t *testing.T) {
	equipmentRepo := new(MockEquipmentRepository)
	historyRepo := new(MockHistoryRepository)
	svc := newEquipmentServiceForTest(equipmentRepo, new(MockAttachmentRepository), new(MockTermRepository), historyRepo, &fakeFileStorage{})

	equipmentRepo.On("FindEquipment", mock.Anything, uint64(1)).Return(sampleEquipment(), nil)
	equipmentRepo.On("UpdateEquipment", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	historyRepo.On("CreateInTx", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1), nil)

	_, err := svc.RegisterMaintenance(context.Background(), 1, dto.RegisterMaintenanceDTO{
		Description: "Замена термопасты",
	})
	require.NoError(t, err)

	require.Len(t, historyRepo.entries, 1)
	entry := historyRepo.entries[0]
	assert.Equal(t, constants.ChangeTypeMaintenance, entry.ChangeType)
	assert.Equal(t, constants.EquipmentStatusActive, *entry.OldValue)
	assert.Equal(t, constants.EquipmentStatusMaintenance, *entry.NewValue)
}

func TestDeleteEquipment_CascadeAndSyntheticEntry(t *testing.T) {
	equipmentRepo := new(MockEquipmentRepository)
	attachmentRepo := new(MockAttachmentRepository)
	termRepo := new(MockTermRepository)
	historyRepo := new(MockHistoryRepository)
	storage := &fakeFileStorage{}
	svc := newEquipmentServiceForTest(equipmentRepo, attachmentRepo, termRepo, historyRepo, storage)

	equipmentRepo.On("FindEquipment", mock.Anything, uint64(1)).Return(sampleEquipment(), nil)
	attachmentRepo.On("FindAllByEquipmentID", mock.Anything, uint64(1)).Return([]entities.Attachment{
		{ID: 5, EquipmentID: 1, FilePath: "attachments/1_100_invoice.pdf"},
	}, nil)
	termRepo.On("FindAllByEquipmentID", mock.Anything, uint64(1)).Return([]entities.ResponsibilityTerm{
		{ID: 7, EquipmentID: 1, PdfURL: utils.ToPtr("terms/termo_1_100.pdf")},
	}, nil)

	historyRepo.On("DeleteByEquipmentID", mock.Anything, mock.Anything, uint64(1)).Return(nil)
	attachmentRepo.On("DeleteByEquipmentID", mock.Anything, mock.Anything, uint64(1)).Return(nil)
	termRepo.On("DeleteByEquipmentID", mock.Anything, mock.Anything, uint64(1)).Return(nil)
	equipmentRepo.On("DeleteEquipment", mock.Anything, mock.Anything, uint64(1)).Return(nil)
	historyRepo.On("CreateInTx", mock.Anything, mock.Anything, mock.Anything).Return(uint64(1), nil)

	err := svc.DeleteEquipment(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, historyRepo.entries, 1)
	entry := historyRepo.entries[0]
	assert.Equal(t, constants.ChangeTypeDeleted, entry.ChangeType)
	assert.Nil(t, entry.EquipmentID)
	assert.Equal(t, uint64(1), entry.EntityID)
	assert.Equal(t, "TOP-0001 - Ноутбук для разработки", *entry.OldValue)

	assert.ElementsMatch(t, []string{"attachments/1_100_invoice.pdf", "terms/termo_1_100.pdf"}, storage.deleted)
}

func TestDeleteEquipment_NotFound(t *testing.T) {
	equipmentRepo := new(MockEquipmentRepository)
	svc := newEquipmentServiceForTest(equipmentRepo, new(MockAttachmentRepository), new(MockTermRepository), new(MockHistoryRepository), &fakeFileStorage{})

	equipmentRepo.On("FindEquipment", mock.Anything, uint64(99)).Return(nil, apperrors.ErrNotFound)

	err := svc.DeleteEquipment(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
