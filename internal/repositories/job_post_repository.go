package repositories

import (
	"laddercall_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobPostRepository struct {
	db *gorm.DB
}

func NewJobPostRepository(db *gorm.DB) *JobPostRepository {
	return &JobPostRepository{db: db}
}

// ListFilters are the caller-supplied narrowing filters for a list request.
// The visibility filter is applied on top of these, never instead of them.
type ListFilters struct {
	PostType    *models.PostType
	Category    *models.Category
	AuthorID    *uint
	CommunityID *uint
	Offset      int
	Limit       int
}

// CreateWithOptions writes the post and, when present, its one-to-one
// options row in a single transaction so no post is left without its
// options.
func (r *JobPostRepository) CreateWithOptions(post *models.JobPost) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		options := post.Options
		post.Options = nil
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		if options != nil {
			options.JobPostID = post.ID
			if err := tx.Create(options).Error; err != nil {
				return err
			}
			post.Options = options
		}
		return nil
	})
}

func (r *JobPostRepository) FindByID(id uint) (*models.JobPost, error) {
	var post models.JobPost
	if err := r.db.Preload("Options").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// visibilityScope builds the single combined access filter:
// GLOBAL posts, COMMUNITY posts in the viewer's active communities,
// DESIGNATED posts addressed to the viewer, and the viewer's own posts.
func (r *JobPostRepository) visibilityScope(viewerID uint, communityIDs []uint) *gorm.DB {
	scope := r.db.
		Where("post_type = ?", models.PostTypeGlobal).
		Or("author_id = ?", viewerID).
		Or("post_type = ? AND designated_user_id = ?", models.PostTypeDesignated, viewerID)
	if len(communityIDs) > 0 {
		scope = scope.Or("post_type = ? AND community_id IN ?", models.PostTypeCommunity, communityIDs)
	}
	return scope
}

// FindVisibleByID returns gorm.ErrRecordNotFound both when the row is absent
// and when the viewer may not see it.
func (r *JobPostRepository) FindVisibleByID(id uint, viewerID uint, communityIDs []uint) (*models.JobPost, error) {
	var post models.JobPost
	err := r.db.Preload("Options").
		Where("id = ?", id).
		Where(r.visibilityScope(viewerID, communityIDs)).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *JobPostRepository) ListVisible(viewerID uint, communityIDs []uint, filters ListFilters) ([]models.JobPost, error) {
	query := r.db.Preload("Options").
		Where(r.visibilityScope(viewerID, communityIDs))

	if filters.PostType != nil {
		query = query.Where("post_type = ?", *filters.PostType)
	}
	if filters.Category != nil {
		query = query.Where("category = ?", *filters.Category)
	}
	if filters.AuthorID != nil {
		query = query.Where("author_id = ?", *filters.AuthorID)
	}
	if filters.CommunityID != nil {
		query = query.Where("community_id = ?", *filters.CommunityID)
	}
	if filters.Limit > 0 {
		query = query.Offset(filters.Offset).Limit(filters.Limit)
	}

	var posts []models.JobPost
	err := query.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// UpdateWithOptions saves the post and upserts its options row keyed by the
// post id, in one transaction.
func (r *JobPostRepository) UpdateWithOptions(post *models.JobPost) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		options := post.Options
		post.Options = nil
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		if options != nil {
			options.JobPostID = post.ID
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "job_post_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"loading_service", "travel_distance", "dump_service", "updated_at",
				}),
			}).Create(options).Error; err != nil {
				return err
			}
			post.Options = options
		}
		return nil
	})
}

// Delete removes the post and its options row.
func (r *JobPostRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_post_id = ?", id).Delete(&models.JobPostOptions{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.JobPost{}, id).Error
	})
}
