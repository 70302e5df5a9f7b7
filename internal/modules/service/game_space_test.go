package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabletop-manager/api/internal/infra/cache"
	"github.com/tabletop-manager/api/internal/modules/model"
	"github.com/tabletop-manager/api/internal/modules/repo"
	"github.com/tabletop-manager/api/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestGameSpaceService(t *testing.T, db *gorm.DB) (GameSpaceService, cache.ActiveSpaceStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	active := cache.NewActiveSpaceStore(rdb, "active_game_space:")
	return NewGameSpaceService(repo.NewGameSpaceRepo(db), active, zap.NewNop()), active
}

func TestCreateGameSpace(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc, _ := newTestGameSpaceService(t, db)
	owner := uuid.New()

	tests := []struct {
		name        string
		req         CreateGameSpaceReq
		expectError bool
		errorMsg    string
	}{
		{name: "ok", req: CreateGameSpaceReq{Name: "  Curse of Strahd  "}},
		{name: "blank name", req: CreateGameSpaceReq{Name: " "}, expectError: true, errorMsg: "name is required"},
		{name: "long name", req: CreateGameSpaceReq{Name: strings.Repeat("x", 101)}, expectError: true, errorMsg: "name must be at most 100 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs, err := svc.Create(ctx, owner, tt.req)
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Curse of Strahd", gs.Name)
			assert.Equal(t, owner, gs.GMUserID)
			assert.Len(t, gs.InviteCode, inviteCodeLen)

			role, err := svc.RoleOf(ctx, gs.ID, owner)
			require.NoError(t, err)
			assert.Equal(t, model.RoleGM, role)
		})
	}
}

func TestListForUser_RolesCountsAndDedupe(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc, _ := newTestGameSpaceService(t, db)
	gm, player, stranger := uuid.New(), uuid.New(), uuid.New()

	alpha, err := svc.Create(ctx, gm, CreateGameSpaceReq{Name: "Alpha"})
	require.NoError(t, err)
	beta, err := svc.Create(ctx, gm, CreateGameSpaceReq{Name: "Beta"})
	require.NoError(t, err)

	_, err = svc.JoinByInviteCode(ctx, player, strings.ToLower(alpha.InviteCode))
	require.NoError(t, err)
	// joining twice keeps one membership
	_, err = svc.JoinByInviteCode(ctx, player, alpha.InviteCode)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	desc := "Gothic horror"
	_, err = svc.Update(ctx, gm, alpha.ID, UpdateGameSpaceReq{Description: &desc})
	require.NoError(t, err)

	list, err := svc.ListForUser(ctx, gm)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, alpha.ID, list[0].ID)
	assert.Equal(t, beta.ID, list[1].ID)
	for _, e := range list {
		assert.Equal(t, model.RoleGM, e.Role)
	}
	assert.EqualValues(t, 2, list[0].MemberCount)
	assert.EqualValues(t, 1, list[1].MemberCount)

	list, err = svc.ListForUser(ctx, player)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, alpha.ID, list[0].ID)
	assert.Equal(t, model.RolePlayer, list[0].Role)

	list, err = svc.ListForUser(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateAndDeleteGameSpace_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc, active := newTestGameSpaceService(t, db)
	owner, other := uuid.New(), uuid.New()

	gs, err := svc.Create(ctx, owner, CreateGameSpaceReq{Name: "Mine"})
	require.NoError(t, err)

	name := "Theirs"
	_, err = svc.Update(ctx, other, gs.ID, UpdateGameSpaceReq{Name: &name})
	assert.True(t, apperr.IsPermission(err))

	assert.True(t, apperr.IsPermission(svc.Delete(ctx, other, gs.ID)))
	assert.True(t, apperr.IsNotFound(svc.Delete(ctx, owner, uuid.New())))

	_, err = svc.SetActive(ctx, owner, &gs.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, gs.ID))

	_, err = svc.Get(ctx, gs.ID)
	assert.True(t, apperr.IsNotFound(err))
	cur, err := active.Get(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, cur)

	list, err := svc.ListForUser(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestComputeStats_ZeroForEmptySpace(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc, _ := newTestGameSpaceService(t, db)

	gs := &model.GameSpace{Name: "Empty", GMUserID: uuid.New(), InviteCode: "EMPTY123"}
	require.NoError(t, db.Create(gs).Error)

	st, err := svc.ComputeStats(ctx, gs.ID)
	require.NoError(t, err)
	assert.Equal(t, &model.GameSpaceStats{}, st)
}

func TestComputeStats_CountsChildren(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc, _ := newTestGameSpaceService(t, db)
	content := newTestContentService(db)
	chars := newTestCharacterService(db, nil, nil)
	tracker := NewTrackerService(repo.NewGameSpaceOptionRepo(db), repo.NewGameSessionRepo(db), nil, zap.NewNop())
	owner := uuid.New()

	gs, err := svc.Create(ctx, owner, CreateGameSpaceReq{Name: "Busy"})
	require.NoError(t, err)

	mustCreateCharacter(t, chars, gs.ID, "Ismark", model.CharacterTypePC)
	mustCreateCharacter(t, chars, gs.ID, "Ireena", model.CharacterTypePC)
	gone := mustCreateCharacter(t, chars, gs.ID, "Bildrath", model.CharacterTypeNPC)
	mustCreateCharacter(t, chars, gs.ID, "Strahd", model.CharacterTypeNPC)
	require.NoError(t, chars.DeleteCharacter(ctx, gs.ID, gone.ID))

	_, err = content.CreateTextSection(ctx, gs.ID, CreateTextSectionReq{Title: "Rules", SectionType: model.SectionTypeRules})
	require.NoError(t, err)
	_, err = content.CreateDynamicAttribute(ctx, gs.ID, attrReq("STR", 1, 20, 10))
	require.NoError(t, err)
	_, err = tracker.CreateOption(ctx, gs.ID, CreateOptionReq{Key: "initiative", Type: model.OptionTypeTracker})
	require.NoError(t, err)
	_, err = tracker.CreateOption(ctx, gs.ID, CreateOptionReq{Key: "theme", Type: "custom"})
	require.NoError(t, err)
	_, err = tracker.StartSession(ctx, gs.ID, StartSessionReq{Name: "Session 1"})
	require.NoError(t, err)

	st, err := svc.ComputeStats(ctx, gs.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.PlayerCharacters)
	assert.EqualValues(t, 1, st.NPCs)
	assert.EqualValues(t, 1, st.ContentPages)
	assert.EqualValues(t, 1, st.CustomAttributes)
	assert.EqualValues(t, 1, st.ActiveTrackers)
	assert.EqualValues(t, 1, st.TotalMembers)
	assert.EqualValues(t, 1, st.ActiveSessions)
	require.NotNil(t, st.LastActivity)

	again, err := svc.ComputeStats(ctx, gs.ID)
	require.NoError(t, err)
	assert.Equal(t, st, again)
}

func TestSetActive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc, _ := newTestGameSpaceService(t, db)
	owner, stranger := uuid.New(), uuid.New()

	gs, err := svc.Create(ctx, owner, CreateGameSpaceReq{Name: "Active"})
	require.NoError(t, err)

	cur, err := svc.Active(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, cur)

	sel, err := svc.SetActive(ctx, owner, &gs.ID)
	require.NoError(t, err)
	require.NotNil(t, sel)
	assert.Equal(t, gs.ID, sel.GameSpace.ID)
	require.NotNil(t, sel.Stats)
	assert.EqualValues(t, 1, sel.Stats.TotalMembers)

	cur, err = svc.Active(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, gs.ID, cur.GameSpace.ID)

	_, err = svc.SetActive(ctx, stranger, &gs.ID)
	assert.True(t, apperr.IsPermission(err))

	cleared, err := svc.SetActive(ctx, owner, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared)
	cur, err = svc.Active(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestActive_ClearedAfterRemoval(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc, active := newTestGameSpaceService(t, db)
	owner, player := uuid.New(), uuid.New()

	gs, err := svc.Create(ctx, owner, CreateGameSpaceReq{Name: "Strahd's Castle"})
	require.NoError(t, err)
	_, err = svc.AddMember(ctx, owner, gs.ID, AddMemberReq{UserID: player})
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, player, &gs.ID)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveMember(ctx, owner, gs.ID, player))

	cur, err := svc.Active(ctx, player)
	require.NoError(t, err)
	assert.Nil(t, cur)

	stored, err := active.Get(ctx, player)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestMembers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc, _ := newTestGameSpaceService(t, db)
	owner, player, cogm := uuid.New(), uuid.New(), uuid.New()

	gs, err := svc.Create(ctx, owner, CreateGameSpaceReq{Name: "Party"})
	require.NoError(t, err)

	m, err := svc.AddMember(ctx, owner, gs.ID, AddMemberReq{UserID: player})
	require.NoError(t, err)
	assert.Equal(t, model.RolePlayer, m.Role)

	_, err = svc.AddMember(ctx, player, gs.ID, AddMemberReq{UserID: uuid.New()})
	assert.True(t, apperr.IsPermission(err))

	_, err = svc.AddMember(ctx, owner, gs.ID, AddMemberReq{UserID: cogm, Role: "admin"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.AddMember(ctx, owner, gs.ID, AddMemberReq{UserID: cogm, Role: model.RoleGM})
	require.NoError(t, err)
	// a co-gm may manage members too
	_, err = svc.AddMember(ctx, cogm, gs.ID, AddMemberReq{UserID: player})
	require.NoError(t, err)

	members, err := svc.ListMembers(ctx, gs.ID)
	require.NoError(t, err)
	assert.Len(t, members, 3)

	err = svc.RemoveMember(ctx, cogm, gs.ID, owner)
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, svc.RemoveMember(ctx, owner, gs.ID, player))
	_, err = svc.RoleOf(ctx, gs.ID, player)
	assert.True(t, apperr.IsPermission(err))
	assert.True(t, apperr.IsNotFound(svc.RemoveMember(ctx, owner, gs.ID, player)))

	_, err = svc.JoinByInviteCode(ctx, player, "NOPE1234")
	assert.True(t, apperr.IsNotFound(err))
	_, err = svc.JoinByInviteCode(ctx, player, "  ")
	assert.True(t, apperr.IsValidation(err))
}
