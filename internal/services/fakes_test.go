package services

import (
	"errors"
	"sort"
	"time"

	"laddercall_backend/internal/models"
	"laddercall_backend/internal/repositories"

	"gorm.io/gorm"
)

// In-memory fakes backing the service tests. All four repositories share one
// fakeDB so cross-repository semantics (owner rows created with a community,
// membership-driven visibility) behave like the real storage layer.

type fakeDB struct {
	lastID      uint
	users       map[uint]*models.User
	communities map[uint]*models.Community
	members     []*models.CommunityMember
	posts       map[uint]*models.JobPost
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:       make(map[uint]*models.User),
		communities: make(map[uint]*models.Community),
		posts:       make(map[uint]*models.JobPost),
	}
}

func (d *fakeDB) nextID() uint {
	d.lastID++
	return d.lastID
}

func (d *fakeDB) addUser(nickname string) *models.User {
	u := &models.User{
		Provider:     "kakao",
		OAuthSubject: nickname,
		Nickname:     &nickname,
		Role:         models.UserRoleUser,
	}
	u.ID = d.nextID()
	d.users[u.ID] = u
	return u
}

func (d *fakeDB) findMember(communityID, userID uint) *models.CommunityMember {
	for _, m := range d.members {
		if m.CommunityID == communityID && m.UserID == userID {
			return m
		}
	}
	return nil
}

func (d *fakeDB) countActive(communityID uint) int64 {
	var count int64
	for _, m := range d.members {
		if m.CommunityID == communityID && m.Active {
			count++
		}
	}
	return count
}

// --- UserRepository ---

type fakeUserRepo struct{ db *fakeDB }

func (r *fakeUserRepo) FindByID(id uint) (*models.User, error) {
	u, ok := r.db.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByProviderSubject(provider, subject string) (*models.User, error) {
	for _, u := range r.db.users {
		if u.Provider == provider && u.OAuthSubject == subject {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.db.nextID()
	r.db.users[user.ID] = user
	return nil
}

// --- CommunityRepository ---

type fakeCommunityRepo struct{ db *fakeDB }

func (r *fakeCommunityRepo) CreateWithOwner(community *models.Community, ownerID uint) error {
	for _, c := range r.db.communities {
		if c.Slug == community.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	community.ID = r.db.nextID()
	r.db.communities[community.ID] = community

	now := time.Now()
	owner := &models.CommunityMember{
		CommunityID: community.ID,
		UserID:      ownerID,
		Role:        models.MemberRoleOwner,
		Active:      true,
		JoinedAt:    &now,
	}
	owner.ID = r.db.nextID()
	r.db.members = append(r.db.members, owner)
	return nil
}

func (r *fakeCommunityRepo) FindByID(id uint) (*models.Community, error) {
	c, ok := r.db.communities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCommunityRepo) FindBySlug(slug string) (*models.Community, error) {
	for _, c := range r.db.communities {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommunityRepo) List(offset, limit int) ([]models.Community, error) {
	ids := make([]uint, 0, len(r.db.communities))
	for id := range r.db.communities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Community
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, *r.db.communities[id])
	}
	return out, nil
}

func (r *fakeCommunityRepo) Update(community *models.Community) error {
	if _, ok := r.db.communities[community.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.db.communities[community.ID] = community
	return nil
}

func (r *fakeCommunityRepo) Delete(id uint) error {
	delete(r.db.communities, id)
	kept := r.db.members[:0]
	for _, m := range r.db.members {
		if m.CommunityID != id {
			kept = append(kept, m)
		}
	}
	r.db.members = kept
	return nil
}

// --- MemberRepository ---

type fakeMemberRepo struct{ db *fakeDB }

func (r *fakeMemberRepo) FindMember(communityID, userID uint) (*models.CommunityMember, error) {
	if m := r.db.findMember(communityID, userID); m != nil {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMemberRepo) IsActiveMember(communityID, userID uint) (bool, error) {
	m := r.db.findMember(communityID, userID)
	return m != nil && m.Active, nil
}

func (r *fakeMemberRepo) ActiveCommunityIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, m := range r.db.members {
		if m.UserID == userID && m.Active {
			ids = append(ids, m.CommunityID)
		}
	}
	return ids, nil
}

func (r *fakeMemberRepo) SharesActiveCommunity(userA, userB uint) (bool, error) {
	idsA, _ := r.ActiveCommunityIDs(userA)
	idsB, _ := r.ActiveCommunityIDs(userB)
	for _, a := range idsA {
		for _, b := range idsB {
			if a == b {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *fakeMemberRepo) CountActive(communityID uint) (int64, error) {
	return r.db.countActive(communityID), nil
}

func (r *fakeMemberRepo) Create(member *models.CommunityMember) error {
	member.ID = r.db.nextID()
	r.db.members = append(r.db.members, member)
	return nil
}

func (r *fakeMemberRepo) Save(member *models.CommunityMember) error {
	return nil
}

func (r *fakeMemberRepo) Join(communityID, userID uint, memberCap *int, invitedByID *uint) (*models.CommunityMember, error) {
	existing := r.db.findMember(communityID, userID)
	if existing != nil && existing.Active {
		return nil, repositories.ErrMembershipAlreadyActive
	}
	if memberCap != nil && r.db.countActive(communityID) >= int64(*memberCap) {
		return nil, repositories.ErrMemberCapReached
	}

	now := time.Now()
	if existing != nil {
		existing.Active = true
		existing.JoinedAt = &now
		if existing.InvitedByID == nil {
			existing.InvitedByID = invitedByID
		}
		return existing, nil
	}

	member := &models.CommunityMember{
		CommunityID: communityID,
		UserID:      userID,
		Role:        models.MemberRoleMember,
		Active:      true,
		JoinedAt:    &now,
		InvitedByID: invitedByID,
	}
	member.ID = r.db.nextID()
	r.db.members = append(r.db.members, member)
	return member, nil
}

func (r *fakeMemberRepo) ListActive(communityID uint) ([]models.CommunityMember, error) {
	var out []models.CommunityMember
	for _, m := range r.db.members {
		if m.CommunityID == communityID && m.Active {
			copied := *m
			copied.User = r.db.users[m.UserID]
			out = append(out, copied)
		}
	}
	return out, nil
}

// --- JobPostRepository ---

type fakeJobPostRepo struct {
	db      *fakeDB
	failing error // when set, every write returns this error
}

func (r *fakeJobPostRepo) CreateWithOptions(post *models.JobPost) error {
	if r.failing != nil {
		return r.failing
	}
	post.ID = r.db.nextID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	if post.Options != nil {
		post.Options.ID = r.db.nextID()
		post.Options.JobPostID = post.ID
	}
	r.db.posts[post.ID] = post
	return nil
}

func (r *fakeJobPostRepo) FindByID(id uint) (*models.JobPost, error) {
	post, ok := r.db.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *fakeJobPostRepo) visible(post *models.JobPost, viewerID uint, communityIDs []uint) bool {
	if post.PostType == models.PostTypeGlobal || post.AuthorID == viewerID {
		return true
	}
	if post.PostType == models.PostTypeDesignated &&
		post.DesignatedUserID != nil && *post.DesignatedUserID == viewerID {
		return true
	}
	if post.PostType == models.PostTypeCommunity && post.CommunityID != nil {
		for _, id := range communityIDs {
			if id == *post.CommunityID {
				return true
			}
		}
	}
	return false
}

func (r *fakeJobPostRepo) FindVisibleByID(id uint, viewerID uint, communityIDs []uint) (*models.JobPost, error) {
	post, ok := r.db.posts[id]
	if !ok || !r.visible(post, viewerID, communityIDs) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *fakeJobPostRepo) ListVisible(viewerID uint, communityIDs []uint, filters repositories.ListFilters) ([]models.JobPost, error) {
	var matched []*models.JobPost
	for _, post := range r.db.posts {
		if !r.visible(post, viewerID, communityIDs) {
			continue
		}
		if filters.PostType != nil && post.PostType != *filters.PostType {
			continue
		}
		if filters.Category != nil && post.Category != *filters.Category {
			continue
		}
		if filters.AuthorID != nil && post.AuthorID != *filters.AuthorID {
			continue
		}
		if filters.CommunityID != nil && (post.CommunityID == nil || *post.CommunityID != *filters.CommunityID) {
			continue
		}
		matched = append(matched, post)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	var out []models.JobPost
	for i, post := range matched {
		if i < filters.Offset {
			continue
		}
		if filters.Limit > 0 && len(out) >= filters.Limit {
			break
		}
		out = append(out, *post)
	}
	return out, nil
}

func (r *fakeJobPostRepo) UpdateWithOptions(post *models.JobPost) error {
	if r.failing != nil {
		return r.failing
	}
	if _, ok := r.db.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	post.UpdatedAt = time.Now()
	r.db.posts[post.ID] = post
	return nil
}

func (r *fakeJobPostRepo) Delete(id uint) error {
	if r.failing != nil {
		return r.failing
	}
	if _, ok := r.db.posts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.db.posts, id)
	return nil
}

var errBoom = errors.New("boom")
