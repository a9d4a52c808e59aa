package procurementhandler

import (
	"context"
	"procurement-tools-backend/config"
	employeestore "procurement-tools-backend/lib/employee/store"
	filesdbstorage "procurement-tools-backend/lib/file-storage/storage"
	procurementhistorystore "procurement-tools-backend/lib/procurement/history-store"
	procurementitemstore "procurement-tools-backend/lib/procurement/item-store"
	procurementstore "procurement-tools-backend/lib/procurement/store"
	"procurement-tools-backend/lib/procurement/workflow"
	"procurement-tools-backend/models"
	procurementapimodels "procurement-tools-backend/models/api/procurement"
	dbmodels "procurement-tools-backend/models/db"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func initTestConfig() {
	conf := new(config.Configuration)
	conf.Procurement.CompletionDeptCode = 7
	requireEvidence := true
	conf.Procurement.RequireItemEvidence = &requireEvidence
	config.Conf = conf
}

type stubRequestStore struct {
	procurementstore.Provider
	recs map[string]*dbmodels.ProcurementRequest
}

func (s stubRequestStore) GetByID(id string) (*dbmodels.ProcurementRequest, error) {
	return s.recs[id], nil
}

type stubItemStore struct {
	procurementitemstore.Provider
	recs map[string]*dbmodels.ProcurementItem
}

func (s stubItemStore) GetByID(requestID, id string) (*dbmodels.ProcurementItem, error) {
	rec := s.recs[id]
	if rec == nil || rec.RequestID != requestID {
		return nil, nil
	}
	return rec, nil
}

type stubFileStore struct {
	filesdbstorage.Provider
	recs map[string]*dbmodels.FileStorage
}

func (s stubFileStore) GetByID(id string) (*dbmodels.FileStorage, error) {
	return s.recs[id], nil
}

func (s stubFileStore) GetByItem(itemID string, fileType dbmodels.FileType) (*dbmodels.FileStorage, error) {
	for _, rec := range s.recs {
		if rec.ItemID == itemID && rec.Type == fileType {
			return rec, nil
		}
	}
	return nil, nil
}

type stubHistoryStore struct {
	procurementhistorystore.Provider
}

type stubEmployeeStore struct {
	employeestore.Provider
}

const (
	testRequestID   = "0b6e6dd8-0000-0000-0000-000000000001"
	otherRequestID  = "0b6e6dd8-0000-0000-0000-000000000002"
	testItemID      = "1c7f7ee9-0000-0000-0000-000000000001"
	otherItemID     = "1c7f7ee9-0000-0000-0000-000000000002"
	ownEvidenceID   = "2d8f8ffa-0000-0000-0000-000000000001"
	alienEvidenceID = "2d8f8ffa-0000-0000-0000-000000000002"
	itemsListFileID = "2d8f8ffa-0000-0000-0000-000000000003"
	completionID    = "2d8f8ffa-0000-0000-0000-000000000004"
	alienComplID    = "2d8f8ffa-0000-0000-0000-000000000005"
)

func newTestHandler() impl {
	request := &dbmodels.ProcurementRequest{
		BaseModel:         dbmodels.BaseModel{ID: testRequestID},
		RequesterID:       "requester-1",
		RequesterDeptCode: 9,
		Category:          models.CategoryMarketing,
		Status:            models.PRStatusPendingItemsCompletion,
	}
	item := &dbmodels.ProcurementItem{
		BaseModel:    dbmodels.BaseModel{ID: testItemID},
		RequestID:    testRequestID,
		Name:         "Ноутбук",
		Quantity:     1,
		ReviewStatus: models.ItemUnreviewed,
	}
	files := map[string]*dbmodels.FileStorage{
		ownEvidenceID: {
			BaseModel: dbmodels.BaseModel{ID: ownEvidenceID},
			RequestID: testRequestID,
			ItemID:    testItemID,
			Type:      dbmodels.ItemEvidence,
		},
		alienEvidenceID: {
			BaseModel: dbmodels.BaseModel{ID: alienEvidenceID},
			RequestID: otherRequestID,
			ItemID:    otherItemID,
			Type:      dbmodels.ItemEvidence,
		},
		itemsListFileID: {
			BaseModel: dbmodels.BaseModel{ID: itemsListFileID},
			RequestID: testRequestID,
			Type:      dbmodels.RequestItemsList,
		},
		completionID: {
			BaseModel: dbmodels.BaseModel{ID: completionID},
			RequestID: testRequestID,
			Type:      dbmodels.RequestCompletion,
		},
		alienComplID: {
			BaseModel: dbmodels.BaseModel{ID: alienComplID},
			RequestID: otherRequestID,
			Type:      dbmodels.RequestCompletion,
		},
	}
	return impl{
		store: stubRequestStore{
			recs: map[string]*dbmodels.ProcurementRequest{testRequestID: request},
		},
		itemStore: stubItemStore{
			recs: map[string]*dbmodels.ProcurementItem{testItemID: item},
		},
		historyStore:  stubHistoryStore{},
		employeeStore: stubEmployeeStore{},
		fileStore:     stubFileStore{recs: files},
	}
}

func supplyActor() workflow.Actor {
	return workflow.Actor{ID: "supply-1", Role: models.UserRoleEmployee, DeptCode: 7}
}

func TestResolveEvidenceFile(t *testing.T) {
	initTestConfig()
	h := newTestHandler()
	t.Run(`переданный документ своей позиции принимается`, func(t *testing.T) {
		fileID, err := h.resolveEvidenceFile(testRequestID, testItemID, ownEvidenceID)
		require.Nil(t, err)
		require.Equal(t, ownEvidenceID, fileID)
	})
	t.Run(`без переданного файла берется ранее загруженный документ`, func(t *testing.T) {
		fileID, err := h.resolveEvidenceFile(testRequestID, testItemID, "")
		require.Nil(t, err)
		require.Equal(t, ownEvidenceID, fileID)
	})
	t.Run(`нет документа - пустой результат без ошибки`, func(t *testing.T) {
		fileID, err := h.resolveEvidenceFile(testRequestID, otherItemID, "")
		require.Nil(t, err)
		require.Empty(t, fileID)
	})
	t.Run(`документ чужой заявки отвергается`, func(t *testing.T) {
		_, err := h.resolveEvidenceFile(testRequestID, testItemID, alienEvidenceID)
		require.NotNil(t, err)
	})
	t.Run(`файл другого назначения отвергается`, func(t *testing.T) {
		_, err := h.resolveEvidenceFile(testRequestID, testItemID, itemsListFileID)
		require.NotNil(t, err)
	})
}

func TestReviewItemFileOwnership(t *testing.T) {
	initTestConfig()
	h := newTestHandler()
	t.Run(`отработка с документом чужой заявки отклоняется`, func(t *testing.T) {
		err := h.ReviewItem(supplyActor(), testRequestID, testItemID, procurementapimodels.ItemReviewData{
			FileID: alienEvidenceID,
		})
		require.NotNil(t, err)
	})
	t.Run(`отработка с файлом списка позиций вместо документа отклоняется`, func(t *testing.T) {
		err := h.ReviewItem(supplyActor(), testRequestID, testItemID, procurementapimodels.ItemReviewData{
			FileID: itemsListFileID,
		})
		require.NotNil(t, err)
	})
}

func TestCompleteFileOwnership(t *testing.T) {
	initTestConfig()
	h := newTestHandler()
	t.Run(`файл чужой заявки отклоняется`, func(t *testing.T) {
		err := h.Complete(context.Background(), supplyActor(), testRequestID, procurementapimodels.CompleteData{
			Comment: "закуплено",
			FileID:  alienComplID,
		})
		require.NotNil(t, err)
	})
	t.Run(`файл другого назначения отклоняется`, func(t *testing.T) {
		err := h.Complete(context.Background(), supplyActor(), testRequestID, procurementapimodels.CompleteData{
			Comment: "закуплено",
			FileID:  ownEvidenceID,
		})
		require.NotNil(t, err)
	})
}

func TestUploadCompletionFileAccess(t *testing.T) {
	initTestConfig()
	h := newTestHandler()
	t.Run(`недоступно вне этапа отработки позиций`, func(t *testing.T) {
		store := h.store.(stubRequestStore)
		store.recs[testRequestID].Status = models.PRStatusPendingDepartmentHead
		defer func() { store.recs[testRequestID].Status = models.PRStatusPendingItemsCompletion }()

		_, err := h.UploadCompletionFile(context.Background(), supplyActor(), testRequestID, "акт.pdf", "application/pdf", []byte("%PDF"))
		require.True(t, errors.Is(err, workflow.ErrInvalidTransition))
	})
	t.Run(`недоступно сотруднику другого подразделения`, func(t *testing.T) {
		actor := workflow.Actor{ID: "emp-1", Role: models.UserRoleEmployee, DeptCode: 9}
		_, err := h.UploadCompletionFile(context.Background(), actor, testRequestID, "акт.pdf", "application/pdf", []byte("%PDF"))
		require.True(t, errors.Is(err, workflow.ErrUnauthorized))
	})
}
