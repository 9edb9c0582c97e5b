package services

import (
	"context"
	"testing"

	"laddercall_backend/internal/models"
	"laddercall_backend/internal/services/dto"
	"laddercall_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool { return &b }
func uintPtr(u uint) *uint { return &u }
func ladderPtr(t models.LadderType) *models.LadderType { return &t }
func paymentPtr(p models.PaymentMethod) *models.PaymentMethod { return &p }

type jobPostFixture struct {
	db       *fakeDB
	postRepo *fakeJobPostRepo
	svc      *JobPostService
	members  *fakeMemberRepo
}

func newJobPostFixture() *jobPostFixture {
	db := newFakeDB()
	postRepo := &fakeJobPostRepo{db: db}
	memberRepo := &fakeMemberRepo{db: db}
	svc := NewJobPostService(postRepo, memberRepo, &fakeCommunityRepo{db: db}, &fakeUserRepo{db: db})
	return &jobPostFixture{db: db, postRepo: postRepo, svc: svc, members: memberRepo}
}

func (f *jobPostFixture) addCommunity(slug string, memberCap *int, workFee, supportFee *float64, memberIDs ...uint) *models.Community {
	c := &models.Community{
		Name:              slug,
		Slug:              slug,
		MemberCap:         memberCap,
		WorkFeePercent:    workFee,
		SupportFeePercent: supportFee,
	}
	c.ID = f.db.nextID()
	f.db.communities[c.ID] = c
	for _, uid := range memberIDs {
		m := &models.CommunityMember{CommunityID: c.ID, UserID: uid, Role: models.MemberRoleMember, Active: true}
		m.ID = f.db.nextID()
		f.db.members = append(f.db.members, m)
	}
	return c
}

func skyCreateRequest(authorID uint) *dto.CreateJobPostRequest {
	return &dto.CreateJobPostRequest{
		AuthorID:         authorID,
		PostType:         models.PostTypeGlobal,
		Category:         models.CategorySky,
		EquipmentType:    strPtr("3.5 ton"),
		EquipmentLengths: []int{28, 30},
		WorkDate:         strPtr("2026-09-10"),
		ArrivalTime:      strPtr("07:30"),
	}
}

func ladderCreateRequest(authorID uint) *dto.CreateJobPostRequest {
	return &dto.CreateJobPostRequest{
		AuthorID:            authorID,
		PostType:            models.PostTypeGlobal,
		Category:            models.CategoryLadder,
		LadderType:          ladderPtr(models.LadderTypeMovingGoods),
		LuggageVolume:       strPtr("20 boxes"),
		WorkFloor:           intPtr(8),
		OverallHeight:       floatPtr(24.0),
		WorkCost:            intPtr(180000),
		WithFee:             boolPtr(true),
		PaymentMethod:       paymentPtr(models.PaymentMethodDirectPayment),
		ExpectedPaymentDate: strPtr("2026-09-20"),
		SiteAddress:         strPtr("77 Quay St"),
		ContactNumber:       strPtr("010-9876-5432"),
		DeliveryInfo:        strPtr("elevator available"),
		Options: &dto.JobPostOptionsPayload{
			LoadingService: strPtr("full"),
			DumpService:    boolPtr(true),
		},
	}
}

func assertAppErrorCode(t *testing.T, err error, code apperrors.ErrorCode) *apperrors.AppError {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected *AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestJobPostCreate_SkyRoundTrip(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	res, err := f.svc.Create(context.Background(), skyCreateRequest(author.ID))
	require.NoError(t, err)

	assert.NotZero(t, res.ID)
	assert.Equal(t, models.PostTypeGlobal, res.PostType)
	assert.Equal(t, models.CategorySky, res.Category)
	assert.Equal(t, author.ID, res.AuthorID)
	require.NotNil(t, res.Sky)
	assert.Equal(t, "3.5 ton", res.Sky.EquipmentType)
	assert.Equal(t, []int{28, 30}, res.Sky.EquipmentLengths)
	assert.Nil(t, res.Ladder)
}

func TestJobPostCreate_LadderRoundTrip(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("mover")

	res, err := f.svc.Create(context.Background(), ladderCreateRequest(author.ID))
	require.NoError(t, err)

	require.NotNil(t, res.Ladder)
	assert.Nil(t, res.Sky)
	assert.Equal(t, models.LadderTypeMovingGoods, res.Ladder.LadderType)
	require.NotNil(t, res.Ladder.Options)
	assert.Equal(t, "full", *res.Ladder.Options.LoadingService)
	require.NotNil(t, res.Ladder.Options.DumpService)
	assert.True(t, *res.Ladder.Options.DumpService)
}

func TestJobPostCreate_RuleViolations(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	req := skyCreateRequest(author.ID)
	req.EquipmentLengths = []int{28, 31}

	_, err := f.svc.Create(context.Background(), req)
	appErr := assertAppErrorCode(t, err, apperrors.CodeValidationFailed)

	details, ok := appErr.Details.([]apperrors.FieldError)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "equipmentLengths", details[0].Field)
}

func TestJobPostCreate_CommunityRequiresActiveMembership(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")
	community := f.addCommunity("sky-crew", nil, nil, nil)

	req := skyCreateRequest(author.ID)
	req.PostType = models.PostTypeCommunity
	req.CommunityID = &community.ID
	req.WithFee = boolPtr(true)

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrNotCommunityMember)
}

func TestJobPostCreate_CommunityUnknown(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	req := skyCreateRequest(author.ID)
	req.PostType = models.PostTypeCommunity
	req.CommunityID = uintPtr(999)
	req.WithFee = boolPtr(true)

	_, err := f.svc.Create(context.Background(), req)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestJobPostCreate_FeeDefaulting(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	t.Run("request value wins", func(t *testing.T) {
		community := f.addCommunity("fees-a", nil, floatPtr(7.5), floatPtr(3.0), author.ID)
		req := skyCreateRequest(author.ID)
		req.PostType = models.PostTypeCommunity
		req.CommunityID = &community.ID
		req.WithFee = boolPtr(true)
		req.CommunityWorkFee = floatPtr(10.0)

		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 10.0, *res.CommunityWorkFee)
		assert.Equal(t, 3.0, *res.CommunitySupportFee)
	})

	t.Run("community default next", func(t *testing.T) {
		community := f.addCommunity("fees-b", nil, floatPtr(7.5), nil, author.ID)
		req := skyCreateRequest(author.ID)
		req.PostType = models.PostTypeCommunity
		req.CommunityID = &community.ID
		req.WithFee = boolPtr(true)

		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 7.5, *res.CommunityWorkFee)
		assert.Equal(t, DefaultCommunitySupportFee, *res.CommunitySupportFee)
	})

	t.Run("platform fallback last", func(t *testing.T) {
		community := f.addCommunity("fees-c", nil, nil, nil, author.ID)
		req := skyCreateRequest(author.ID)
		req.PostType = models.PostTypeCommunity
		req.CommunityID = &community.ID
		req.WithFee = boolPtr(true)

		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, DefaultCommunityWorkFee, *res.CommunityWorkFee)
		assert.Equal(t, DefaultCommunitySupportFee, *res.CommunitySupportFee)
	})
}

func TestJobPostCreate_DesignatedSelf(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	req := skyCreateRequest(author.ID)
	req.PostType = models.PostTypeDesignated
	req.DesignatedUserID = &author.ID

	_, err := f.svc.Create(context.Background(), req)
	assertAppErrorCode(t, err, apperrors.CodeInvalidOperation)
}

func TestJobPostCreate_DesignatedUnreachable(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")
	target := f.db.addUser("stranger")

	req := skyCreateRequest(author.ID)
	req.PostType = models.PostTypeDesignated
	req.DesignatedUserID = &target.ID

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrDesignatedUserUnreachable)
}

func TestJobPostCreate_DesignatedReachable(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")
	target := f.db.addUser("colleague")
	f.addCommunity("shared", nil, nil, nil, author.ID, target.ID)

	req := skyCreateRequest(author.ID)
	req.PostType = models.PostTypeDesignated
	req.DesignatedUserID = &target.ID

	res, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, target.ID, *res.DesignatedUserID)
}

func TestJobPostCreate_DesignatedUnknownTarget(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	req := skyCreateRequest(author.ID)
	req.PostType = models.PostTypeDesignated
	req.DesignatedUserID = uintPtr(404)

	_, err := f.svc.Create(context.Background(), req)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestJobPostGet_VisibilityShapesAsNotFound(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")
	member := f.db.addUser("member")
	outsider := f.db.addUser("outsider")
	community := f.addCommunity("sky-crew", nil, nil, nil, author.ID, member.ID)

	req := skyCreateRequest(author.ID)
	req.PostType = models.PostTypeCommunity
	req.CommunityID = &community.ID
	req.WithFee = boolPtr(true)

	created, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	// Active members and the author see the post.
	_, err = f.svc.Get(context.Background(), member.ID, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(context.Background(), author.ID, created.ID)
	assert.NoError(t, err)

	// A non-member gets the same not-found shape as a missing row.
	_, err = f.svc.Get(context.Background(), outsider.ID, created.ID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
	_, err = f.svc.Get(context.Background(), outsider.ID, 9999)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestJobPostGet_DesignatedVisibleToTargetOnly(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")
	target := f.db.addUser("colleague")
	bystander := f.db.addUser("bystander")
	f.addCommunity("shared", nil, nil, nil, author.ID, target.ID, bystander.ID)

	req := skyCreateRequest(author.ID)
	req.PostType = models.PostTypeDesignated
	req.DesignatedUserID = &target.ID

	created, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), target.ID, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(context.Background(), author.ID, created.ID)
	assert.NoError(t, err)
	_, err = f.svc.Get(context.Background(), bystander.ID, created.ID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestJobPostList_VisibilityAndFilters(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")
	member := f.db.addUser("member")
	outsider := f.db.addUser("outsider")
	community := f.addCommunity("sky-crew", nil, nil, nil, author.ID, member.ID)

	_, err := f.svc.Create(context.Background(), skyCreateRequest(author.ID))
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), ladderCreateRequest(author.ID))
	require.NoError(t, err)

	communityReq := skyCreateRequest(author.ID)
	communityReq.PostType = models.PostTypeCommunity
	communityReq.CommunityID = &community.ID
	communityReq.WithFee = boolPtr(true)
	_, err = f.svc.Create(context.Background(), communityReq)
	require.NoError(t, err)

	// Member sees all three, outsider only the two GLOBAL posts.
	posts, err := f.svc.List(context.Background(), member.ID, &dto.ListJobPostsRequest{})
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	posts, err = f.svc.List(context.Background(), outsider.ID, &dto.ListJobPostsRequest{})
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	// Narrowing filters apply on top of visibility.
	sky := models.CategorySky
	posts, err = f.svc.List(context.Background(), member.ID, &dto.ListJobPostsRequest{Category: &sky})
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	communityType := models.PostTypeCommunity
	posts, err = f.svc.List(context.Background(), outsider.ID, &dto.ListJobPostsRequest{PostType: &communityType})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestJobPostList_Pagination(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	for i := 0; i < 5; i++ {
		_, err := f.svc.Create(context.Background(), skyCreateRequest(author.ID))
		require.NoError(t, err)
	}

	posts, err := f.svc.List(context.Background(), author.ID, &dto.ListJobPostsRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, err = f.svc.List(context.Background(), author.ID, &dto.ListJobPostsRequest{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestJobPostUpdate_AuthorOnly(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")
	other := f.db.addUser("other")

	created, err := f.svc.Create(context.Background(), skyCreateRequest(author.ID))
	require.NoError(t, err)

	// Non-author gets not-found, never forbidden.
	_, err = f.svc.Update(context.Background(), other.ID, created.ID, &dto.UpdateJobPostRequest{
		WorkDate: strPtr("2026-09-11"),
	})
	assertAppErrorCode(t, err, apperrors.CodeNotFound)

	res, err := f.svc.Update(context.Background(), author.ID, created.ID, &dto.UpdateJobPostRequest{
		EquipmentType:    strPtr("5 ton"),
		EquipmentLengths: []int{40, 45},
		WorkDate:         strPtr("2026-09-11"),
	})
	require.NoError(t, err)
	assert.Equal(t, "5 ton", res.Sky.EquipmentType)
	assert.Equal(t, []int{40, 45}, res.Sky.EquipmentLengths)
	assert.Equal(t, "2026-09-11", *res.WorkDate)
}

func TestJobPostUpdate_ReevaluatesRules(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	created, err := f.svc.Create(context.Background(), skyCreateRequest(author.ID))
	require.NoError(t, err)

	// Switching the type without fixing the lengths must fail: 28/30 are not
	// valid for "1 ton".
	_, err = f.svc.Update(context.Background(), author.ID, created.ID, &dto.UpdateJobPostRequest{
		EquipmentType: strPtr("1 ton"),
	})
	appErr := assertAppErrorCode(t, err, apperrors.CodeValidationFailed)
	details, ok := appErr.Details.([]apperrors.FieldError)
	require.True(t, ok)
	assert.Equal(t, "equipmentLengths", details[0].Field)
}

func TestJobPostUpdate_IgnoresWrongCategoryPayload(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	created, err := f.svc.Create(context.Background(), skyCreateRequest(author.ID))
	require.NoError(t, err)

	// LADDER fields on a SKY post are silently dropped, not persisted.
	res, err := f.svc.Update(context.Background(), author.ID, created.ID, &dto.UpdateJobPostRequest{
		LadderType: ladderPtr(models.LadderTypeOnSite),
	})
	require.NoError(t, err)
	assert.Nil(t, res.Ladder)
	assert.NotNil(t, res.Sky)
}

func TestJobPostDelete_AuthorOnly(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")
	other := f.db.addUser("other")

	created, err := f.svc.Create(context.Background(), skyCreateRequest(author.ID))
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), other.ID, created.ID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)

	err = f.svc.Delete(context.Background(), author.ID, created.ID)
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), author.ID, created.ID)
	assertAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestJobPostCreate_TranslatesStoreErrors(t *testing.T) {
	f := newJobPostFixture()
	author := f.db.addUser("crane-op")

	f.postRepo.failing = gorm.ErrDuplicatedKey
	_, err := f.svc.Create(context.Background(), skyCreateRequest(author.ID))
	assertAppErrorCode(t, err, apperrors.CodeAlreadyExists)

	f.postRepo.failing = errBoom
	_, err = f.svc.Create(context.Background(), skyCreateRequest(author.ID))
	assertAppErrorCode(t, err, apperrors.CodeInternalError)
}
