package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/internal/testutil"
	"kariyer_backend/pkg/apperrors"
)

type recordingChatNotifier struct {
	mu     sync.Mutex
	events []dto.ChatEvent
	users  [][]string
}

func (r *recordingChatNotifier) SendToUsers(ids []string, event any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, ids)
	if ev, ok := event.(dto.ChatEvent); ok {
		r.events = append(r.events, ev)
	}
}

type chatFixture struct {
	env        *testEnv
	chat       ChatService
	pushes     *recordingChatNotifier
	admin      *models.User
	user       *models.User
	advisor    *models.User
	consultant *models.Consultant
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	env := newTestEnv(t)
	pushes := &recordingChatNotifier{}
	f := &chatFixture{
		env:     env,
		pushes:  pushes,
		admin:   testutil.CreateUser(t, env.db, "admin@example.com", models.UserRoleAdmin),
		user:    testutil.CreateUser(t, env.db, "user@example.com", models.UserRoleUser),
		advisor: testutil.CreateUser(t, env.db, "advisor@example.com", models.UserRoleUser),
		chat: NewChatService(
			repositories.NewChatRepository(),
			repositories.NewConsultantRepository(),
			repositories.NewUserRepository(),
			repositories.NewSubscriptionRepository(),
			pushes,
			testRoomCost,
		),
	}

	advisorID := f.advisor.ID
	consultant, err := env.services.ConsultantService.Create(env.db, adminActor(f.admin), &dto.ConsultantRequest{
		UserID:    &advisorID,
		Name:      "Dr. Selin Kaya",
		Title:     "Kariyer Danışmanı",
		Expertise: []string{"KPSS", "Mülakat"},
	})
	require.NoError(t, err)
	f.consultant = consultant
	return f
}

func TestChat_CreateRoomRequiresPremium(t *testing.T) {
	f := newChatFixture(t)
	req := &dto.CreateChatRoomRequest{ConsultantID: f.consultant.ID, Subject: "KPSS hazırlık"}

	_, err := f.chat.CreateRoom(f.env.db, f.user.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrPremiumRequired)

	f.env.activePremium(t, f.user, f.admin)
	room, err := f.chat.CreateRoom(f.env.db, f.user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.ChatRoomStatusActive, room.Status)

	var u models.User
	require.NoError(t, f.env.db.First(&u, "id = ?", f.user.ID).Error)
	assert.Equal(t, 5-testRoomCost, u.Credits)

	again, err := f.chat.CreateRoom(f.env.db, f.user.ID, req)
	require.NoError(t, err)
	assert.Equal(t, room.ID, again.ID, "an open room is reused")
	require.NoError(t, f.env.db.First(&u, "id = ?", f.user.ID).Error)
	assert.Equal(t, 5-testRoomCost, u.Credits, "reuse does not debit again")
}

func TestChat_CreateRoomWithoutCredits(t *testing.T) {
	f := newChatFixture(t)
	f.env.activePremium(t, f.user, f.admin)
	testutil.SetBalance(t, f.env.db, f.user.ID, 0, 0)

	_, err := f.chat.CreateRoom(f.env.db, f.user.ID, &dto.CreateChatRoomRequest{ConsultantID: f.consultant.ID, Subject: "Özgeçmiş"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCredits)

	var rooms int64
	require.NoError(t, f.env.db.Model(&models.ChatRoom{}).Count(&rooms).Error)
	assert.Zero(t, rooms)
}

func TestChat_MessagingFlow(t *testing.T) {
	f := newChatFixture(t)
	f.env.activePremium(t, f.user, f.admin)

	room, err := f.chat.CreateRoom(f.env.db, f.user.ID, &dto.CreateChatRoomRequest{
		ConsultantID: f.consultant.ID,
		Subject:      "Mülakat",
		Message:      "Merhaba, mülakata hazırlanıyorum.",
	})
	require.NoError(t, err)

	userActor := dto.Actor{UserID: f.user.ID, Role: models.UserRoleUser}
	advisorActor := dto.Actor{UserID: f.advisor.ID, Role: models.UserRoleUser}
	stranger := testutil.CreateUser(t, f.env.db, "stranger@example.com", models.UserRoleUser)

	reply, err := f.chat.SendMessage(f.env.db, advisorActor, room.ID, &dto.SendMessageRequest{Content: "Merhaba, yardımcı olayım."})
	require.NoError(t, err)
	assert.Equal(t, models.SenderTypeConsultant, reply.SenderType)

	_, err = f.chat.SendMessage(f.env.db, dto.Actor{UserID: stranger.ID, Role: models.UserRoleUser}, room.ID, &dto.SendMessageRequest{Content: "selam"})
	assert.ErrorIs(t, err, apperrors.ErrChatAccessDenied)

	msgs, err := f.chat.ListMessages(f.env.db, userActor, room.ID, dto.MessageListQuery{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	n, err := f.chat.MarkRead(f.env.db, userActor, room.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	myRooms, err := f.chat.ListMyRooms(f.env.db, f.advisor.ID)
	require.NoError(t, err)
	require.Len(t, myRooms, 1)
	assert.Equal(t, room.ID, myRooms[0].ID)

	closed, err := f.chat.CloseRoom(f.env.db, adminActor(f.admin), room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChatRoomStatusClosed, closed.Status)

	again, err := f.chat.CloseRoom(f.env.db, userActor, room.ID)
	require.NoError(t, err)
	assert.Equal(t, closed.ClosedAt.Unix(), again.ClosedAt.Unix())

	_, err = f.chat.SendMessage(f.env.db, userActor, room.ID, &dto.SendMessageRequest{Content: "hala orada mısınız?"})
	assert.ErrorIs(t, err, apperrors.ErrChatRoomClosed)

	f.pushes.mu.Lock()
	defer f.pushes.mu.Unlock()
	var types []string
	for _, ev := range f.pushes.events {
		types = append(types, ev.Type)
	}
	assert.Contains(t, types, dto.ChatEventMessage)
	assert.Contains(t, types, dto.ChatEventRoomClosed)
	assert.ElementsMatch(t, []string{f.user.ID, f.advisor.ID}, f.pushes.users[0])
}
