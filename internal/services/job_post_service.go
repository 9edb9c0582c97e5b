package services

import (
	"context"
	"encoding/json"
	"errors"

	"laddercall_backend/internal/logger"
	"laddercall_backend/internal/models"
	"laddercall_backend/internal/repositories"
	"laddercall_backend/internal/rules"
	"laddercall_backend/internal/services/dto"
	"laddercall_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Platform-wide fee defaults, applied when neither the request nor the
// community configures a value.
const (
	DefaultCommunityWorkFee    = 5.0
	DefaultCommunitySupportFee = 2.0
)

type JobPostService struct {
	postRepo      JobPostRepository
	memberRepo    MemberRepository
	communityRepo CommunityRepository
	userRepo      UserRepository
}

func NewJobPostService(
	postRepo JobPostRepository,
	memberRepo MemberRepository,
	communityRepo CommunityRepository,
	userRepo UserRepository,
) *JobPostService {
	return &JobPostService{
		postRepo:      postRepo,
		memberRepo:    memberRepo,
		communityRepo: communityRepo,
		userRepo:      userRepo,
	}
}

// Create validates the candidate against the rule engine, runs the access
// checks, applies community fee defaulting and writes the post (plus its
// LADDER options row) in one transaction.
func (s *JobPostService) Create(ctx context.Context, req *dto.CreateJobPostRequest) (*dto.JobPostResponse, error) {
	if violations := rules.Evaluate(candidateFromCreate(req)); len(violations) > 0 {
		return nil, apperrors.ValidationError(violations)
	}

	post := &models.JobPost{
		PostType: req.PostType,
		Category: req.Category,
		AuthorID: req.AuthorID,

		WorkDate:        req.WorkDate,
		ArrivalTime:     req.ArrivalTime,
		WorkSchedule:    req.WorkSchedule,
		CustomWorkHours: req.CustomWorkHours,

		WorkCost:        req.WorkCost,
		FeeTotal:        req.FeeTotal,
		FeeUnit:         req.FeeUnit,
		WithFee:         req.WithFee,
		NightWork:       req.NightWork,
		PriceAdjustment: req.PriceAdjustment,

		PaymentMethod:       req.PaymentMethod,
		ExpectedPaymentDate: req.ExpectedPaymentDate,

		SiteAddress:   req.SiteAddress,
		ContactNumber: req.ContactNumber,
		WorkContents:  req.WorkContents,
		DeliveryInfo:  req.DeliveryInfo,
	}

	switch req.PostType {
	case models.PostTypeCommunity:
		community, err := s.communityRepo.FindByID(*req.CommunityID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		active, err := s.memberRepo.IsActiveMember(community.ID, req.AuthorID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if !active {
			return nil, apperrors.ErrNotCommunityMember
		}

		post.CommunityID = req.CommunityID
		post.CommunityWorkFee = defaultFee(req.CommunityWorkFee, community.WorkFeePercent, DefaultCommunityWorkFee)
		post.CommunitySupportFee = defaultFee(req.CommunitySupportFee, community.SupportFeePercent, DefaultCommunitySupportFee)

	case models.PostTypeDesignated:
		if *req.DesignatedUserID == req.AuthorID {
			return nil, apperrors.ErrInvalidOperation("job_post", "Cannot designate a post to yourself")
		}
		if _, err := s.userRepo.FindByID(*req.DesignatedUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}

		reachable, err := s.memberRepo.SharesActiveCommunity(req.AuthorID, *req.DesignatedUserID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if !reachable {
			return nil, apperrors.ErrDesignatedUserUnreachable
		}

		post.DesignatedUserID = req.DesignatedUserID
	}

	switch req.Category {
	case models.CategorySky:
		post.EquipmentType = req.EquipmentType
		post.EquipmentLengths = encodeLengths(req.EquipmentLengths)
	case models.CategoryLadder:
		post.LadderType = req.LadderType
		post.LuggageVolume = req.LuggageVolume
		post.WorkFloor = req.WorkFloor
		post.OverallHeight = req.OverallHeight
		post.LadderWorkDuration = req.LadderWorkDuration
		if req.Options != nil {
			post.Options = &models.JobPostOptions{
				LoadingService: req.Options.LoadingService,
				TravelDistance: req.Options.TravelDistance,
				DumpService:    req.Options.DumpService,
			}
		}
	}

	if err := s.postRepo.CreateWithOptions(post); err != nil {
		return nil, translateStoreError(err)
	}

	logger.CtxInfo(ctx, "job post created",
		"job_post_id", post.ID,
		"post_type", post.PostType,
		"category", post.Category,
	)

	return shapeJobPost(post), nil
}

// Get returns the post, access-filtered. A denied read surfaces as not-found
// so existence never leaks.
func (s *JobPostService) Get(ctx context.Context, viewerID, postID uint) (*dto.JobPostResponse, error) {
	communityIDs, err := s.memberRepo.ActiveCommunityIDs(viewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	post, err := s.postRepo.FindVisibleByID(postID, viewerID, communityIDs)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return shapeJobPost(post), nil
}

// List computes the viewer's active memberships once and applies the single
// combined visibility filter together with the caller's narrowing filters.
func (s *JobPostService) List(ctx context.Context, viewerID uint, req *dto.ListJobPostsRequest) ([]*dto.JobPostResponse, error) {
	communityIDs, err := s.memberRepo.ActiveCommunityIDs(viewerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	filters := repositories.ListFilters{
		PostType:    req.PostType,
		Category:    req.Category,
		AuthorID:    req.AuthorID,
		CommunityID: req.CommunityID,
	}
	if req.PageSize > 0 {
		filters.Offset = (req.Page - 1) * req.PageSize
		filters.Limit = req.PageSize
	}

	posts, err := s.postRepo.ListVisible(viewerID, communityIDs, filters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.JobPostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, shapeJobPost(&posts[i]))
	}
	return responses, nil
}

// Update is author-only; anyone else gets the same not-found shape as a
// missing row. postType, category and scope targets are immutable.
func (s *JobPostService) Update(ctx context.Context, requesterID, postID uint, req *dto.UpdateJobPostRequest) (*dto.JobPostResponse, error) {
	post, err := s.postRepo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if post.AuthorID != requesterID {
		return nil, apperrors.ErrNotFound(gorm.ErrRecordNotFound)
	}

	applyUpdate(post, req)

	if violations := rules.Evaluate(candidateFromPost(post)); len(violations) > 0 {
		return nil, apperrors.ValidationError(violations)
	}

	if err := s.postRepo.UpdateWithOptions(post); err != nil {
		return nil, translateStoreError(err)
	}

	logger.CtxInfo(ctx, "job post updated", "job_post_id", post.ID)

	return shapeJobPost(post), nil
}

// Delete is author-only, with the same not-found shaping as Update.
func (s *JobPostService) Delete(ctx context.Context, requesterID, postID uint) error {
	post, err := s.postRepo.FindByID(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	if err != nil {
		return apperrors.InternalError(err)
	}

	if post.AuthorID != requesterID {
		return apperrors.ErrNotFound(gorm.ErrRecordNotFound)
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return translateStoreError(err)
	}

	logger.CtxInfo(ctx, "job post deleted", "job_post_id", postID)
	return nil
}

// --- Helpers ---

func defaultFee(requested, communityDefault *float64, fallback float64) *float64 {
	if requested != nil {
		return requested
	}
	if communityDefault != nil {
		v := *communityDefault
		return &v
	}
	v := fallback
	return &v
}

func candidateFromCreate(req *dto.CreateJobPostRequest) *rules.Candidate {
	return &rules.Candidate{
		PostType:         req.PostType,
		Category:         req.Category,
		LadderType:       req.LadderType,
		CommunityID:      req.CommunityID,
		DesignatedUserID: req.DesignatedUserID,

		EquipmentType:    req.EquipmentType,
		EquipmentLengths: req.EquipmentLengths,

		LuggageVolume: req.LuggageVolume,
		WorkFloor:     req.WorkFloor,
		OverallHeight: req.OverallHeight,

		ArrivalTime:        req.ArrivalTime,
		WorkSchedule:       req.WorkSchedule,
		LadderWorkDuration: req.LadderWorkDuration,

		WorkCost:            req.WorkCost,
		WithFee:             req.WithFee,
		PaymentMethod:       req.PaymentMethod,
		ExpectedPaymentDate: req.ExpectedPaymentDate,

		SiteAddress:   req.SiteAddress,
		ContactNumber: req.ContactNumber,
		WorkContents:  req.WorkContents,
		DeliveryInfo:  req.DeliveryInfo,
	}
}

// candidateFromPost re-assembles the full candidate from a stored row after
// an update has been merged in, so every rule re-evaluates against the final
// payload.
func candidateFromPost(post *models.JobPost) *rules.Candidate {
	return &rules.Candidate{
		PostType:         post.PostType,
		Category:         post.Category,
		LadderType:       post.LadderType,
		CommunityID:      post.CommunityID,
		DesignatedUserID: post.DesignatedUserID,

		EquipmentType:    post.EquipmentType,
		EquipmentLengths: decodeLengths(post.EquipmentLengths),

		LuggageVolume: post.LuggageVolume,
		WorkFloor:     post.WorkFloor,
		OverallHeight: post.OverallHeight,

		ArrivalTime:        post.ArrivalTime,
		WorkSchedule:       post.WorkSchedule,
		LadderWorkDuration: post.LadderWorkDuration,

		WorkCost:            post.WorkCost,
		WithFee:             post.WithFee,
		PaymentMethod:       post.PaymentMethod,
		ExpectedPaymentDate: post.ExpectedPaymentDate,

		SiteAddress:   post.SiteAddress,
		ContactNumber: post.ContactNumber,
		WorkContents:  post.WorkContents,
		DeliveryInfo:  post.DeliveryInfo,
	}
}

func applyUpdate(post *models.JobPost, req *dto.UpdateJobPostRequest) {
	if post.Category == models.CategorySky {
		if req.EquipmentType != nil {
			post.EquipmentType = req.EquipmentType
		}
		if req.EquipmentLengths != nil {
			post.EquipmentLengths = encodeLengths(req.EquipmentLengths)
		}
	}

	if post.Category == models.CategoryLadder {
		if req.LadderType != nil {
			post.LadderType = req.LadderType
		}
		if req.LuggageVolume != nil {
			post.LuggageVolume = req.LuggageVolume
		}
		if req.WorkFloor != nil {
			post.WorkFloor = req.WorkFloor
		}
		if req.OverallHeight != nil {
			post.OverallHeight = req.OverallHeight
		}
		if req.LadderWorkDuration != nil {
			post.LadderWorkDuration = req.LadderWorkDuration
		}
		if req.Options != nil {
			post.Options = &models.JobPostOptions{
				JobPostID:      post.ID,
				LoadingService: req.Options.LoadingService,
				TravelDistance: req.Options.TravelDistance,
				DumpService:    req.Options.DumpService,
			}
		}
	}

	if req.WorkDate != nil {
		post.WorkDate = req.WorkDate
	}
	if req.ArrivalTime != nil {
		post.ArrivalTime = req.ArrivalTime
	}
	if req.WorkSchedule != nil {
		post.WorkSchedule = req.WorkSchedule
	}
	if req.CustomWorkHours != nil {
		post.CustomWorkHours = req.CustomWorkHours
	}
	if req.WorkCost != nil {
		post.WorkCost = req.WorkCost
	}
	if req.FeeTotal != nil {
		post.FeeTotal = req.FeeTotal
	}
	if req.FeeUnit != nil {
		post.FeeUnit = req.FeeUnit
	}
	if req.WithFee != nil {
		post.WithFee = req.WithFee
	}
	if req.CommunityWorkFee != nil {
		post.CommunityWorkFee = req.CommunityWorkFee
	}
	if req.CommunitySupportFee != nil {
		post.CommunitySupportFee = req.CommunitySupportFee
	}
	if req.NightWork != nil {
		post.NightWork = *req.NightWork
	}
	if req.PriceAdjustment != nil {
		post.PriceAdjustment = req.PriceAdjustment
	}
	if req.PaymentMethod != nil {
		post.PaymentMethod = req.PaymentMethod
	}
	if req.ExpectedPaymentDate != nil {
		post.ExpectedPaymentDate = req.ExpectedPaymentDate
	}
	if req.SiteAddress != nil {
		post.SiteAddress = req.SiteAddress
	}
	if req.ContactNumber != nil {
		post.ContactNumber = req.ContactNumber
	}
	if req.WorkContents != nil {
		post.WorkContents = req.WorkContents
	}
	if req.DeliveryInfo != nil {
		post.DeliveryInfo = req.DeliveryInfo
	}
}

func encodeLengths(lengths []int) datatypes.JSON {
	if len(lengths) == 0 {
		return nil
	}
	raw, _ := json.Marshal(lengths)
	return datatypes.JSON(raw)
}

func decodeLengths(raw datatypes.JSON) []int {
	if len(raw) == 0 {
		return nil
	}
	var lengths []int
	_ = json.Unmarshal(raw, &lengths)
	return lengths
}

// shapeJobPost maps the flat row into the tagged response: exactly one of
// sky/ladder is populated, keyed by category.
func shapeJobPost(post *models.JobPost) *dto.JobPostResponse {
	res := &dto.JobPostResponse{
		ID:               post.ID,
		PostType:         post.PostType,
		Category:         post.Category,
		AuthorID:         post.AuthorID,
		CommunityID:      post.CommunityID,
		DesignatedUserID: post.DesignatedUserID,

		WorkDate:        post.WorkDate,
		ArrivalTime:     post.ArrivalTime,
		WorkSchedule:    post.WorkSchedule,
		CustomWorkHours: post.CustomWorkHours,

		WorkCost:            post.WorkCost,
		FeeTotal:            post.FeeTotal,
		FeeUnit:             post.FeeUnit,
		WithFee:             post.WithFee,
		CommunityWorkFee:    post.CommunityWorkFee,
		CommunitySupportFee: post.CommunitySupportFee,
		NightWork:           post.NightWork,
		PriceAdjustment:     post.PriceAdjustment,

		PaymentMethod:       post.PaymentMethod,
		ExpectedPaymentDate: post.ExpectedPaymentDate,

		SiteAddress:   post.SiteAddress,
		ContactNumber: post.ContactNumber,
		WorkContents:  post.WorkContents,
		DeliveryInfo:  post.DeliveryInfo,

		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	switch post.Category {
	case models.CategorySky:
		if post.EquipmentType != nil {
			res.Sky = &dto.SkyPayload{
				EquipmentType:    *post.EquipmentType,
				EquipmentLengths: decodeLengths(post.EquipmentLengths),
			}
		}
	case models.CategoryLadder:
		if post.LadderType != nil {
			ladder := &dto.LadderPayload{
				LadderType:         *post.LadderType,
				LuggageVolume:      post.LuggageVolume,
				WorkFloor:          post.WorkFloor,
				OverallHeight:      post.OverallHeight,
				LadderWorkDuration: post.LadderWorkDuration,
			}
			if post.Options != nil {
				ladder.Options = &dto.JobPostOptionsPayload{
					LoadingService: post.Options.LoadingService,
					TravelDistance: post.Options.TravelDistance,
					DumpService:    post.Options.DumpService,
				}
			}
			res.Ladder = ladder
		}
	}

	return res
}

// translateStoreError keeps raw storage errors from escaping a service.
func translateStoreError(err error) error {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrAlreadyExists(err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.ValidationError([]apperrors.FieldError{
			{Field: "id", Message: "Referenced resource does not exist"},
		})
	}
	return apperrors.InternalError(err)
}
