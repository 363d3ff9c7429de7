package services

import (
	"fmt"

	"equipment-visualizer/models"
	"equipment-visualizer/storage"
	"equipment-visualizer/utils"
)

// DefaultRetentionLimit is the number of most recent datasets kept.
const DefaultRetentionLimit = 5

// RetentionService enforces a fixed-size window over committed datasets:
// the newest `limit` by upload time survive, everything older is deleted
// along with its equipment. Recency is timestamp order with the dataset id
// as a deterministic tiebreak, so eviction follows backdated timestamps
// rather than commit order.
type RetentionService struct {
	store  storage.DatasetStore
	logger *utils.Logger
}

// NewRetentionService creates a RetentionService over the given store.
func NewRetentionService(store storage.DatasetStore, logger *utils.Logger) *RetentionService {
	return &RetentionService{store: store, logger: logger}
}

// Evictable returns the datasets currently outside the retained window,
// oldest last. A limit < 1 falls back to DefaultRetentionLimit.
func (s *RetentionService) Evictable(limit int) ([]*models.Dataset, error) {
	if limit < 1 {
		limit = DefaultRetentionLimit
	}

	all, err := s.store.ListDatasets(0)
	if err != nil {
		return nil, fmt.Errorf("retention: list datasets: %w", err)
	}
	if len(all) <= limit {
		return nil, nil
	}
	return all[limit:], nil
}

// Enforce deletes every dataset outside the retained window and returns the
// number evicted. The membership is recomputed fresh on every call, so
// running it twice in a row with no new commits is a no-op.
func (s *RetentionService) Enforce(limit int) (int, error) {
	victims, err := s.Evictable(limit)
	if err != nil {
		return 0, err
	}

	evicted := 0
	for _, d := range victims {
		if err := s.store.DeleteDataset(d.ID); err != nil {
			return evicted, fmt.Errorf("retention: delete dataset %s: %w", d.ID, err)
		}
		evicted++
		s.logger.Info("[retention] Evicted dataset %s (%s, uploaded %s)",
			d.ID, d.Filename, d.UploadedAt.Format("2006-01-02 15:04:05"))
	}
	return evicted, nil
}
