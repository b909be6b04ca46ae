package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	channelmodels "cryptochat-backend/internal/features/channel/models"
	messagemodels "cryptochat-backend/internal/features/message/models"
	usermodels "cryptochat-backend/internal/features/user/models"
)

var errStore = errors.New("store unavailable")

// recordingSender captures every frame the coordinator emits.
type recordingSender struct {
	mu         sync.Mutex
	broadcasts []Envelope
	excepts    []exceptFrame
	directs    map[string][]Envelope
}

type exceptFrame struct {
	exclude string
	frame   Envelope
}

func newRecordingSender() *recordingSender {
	return &recordingSender{directs: make(map[string][]Envelope)}
}

func decodeFrame(payload []byte) Envelope {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		panic(err)
	}
	return env
}

func (s *recordingSender) Broadcast(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcasts = append(s.broadcasts, decodeFrame(payload))
}

func (s *recordingSender) BroadcastExcept(connID string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.excepts = append(s.excepts, exceptFrame{exclude: connID, frame: decodeFrame(payload)})
}

func (s *recordingSender) SendTo(connID string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directs[connID] = append(s.directs[connID], decodeFrame(payload))
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[primitive.ObjectID]*usermodels.User
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*usermodels.User)}
}

func (f *fakeUserRepo) add(user *usermodels.User) *usermodels.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeUserRepo) FindByUsernameOrWallet(_ context.Context, username, walletAddress string) (*usermodels.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username || user.WalletAddress == walletAddress {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*usermodels.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *usermodels.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = primitive.NewObjectID()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) BindSocket(_ context.Context, id primitive.ObjectID, socketID, avatar, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return errStore
	}
	user.IsOnline = true
	user.SocketID = socketID
	user.LastSeen = time.Now()
	if avatar != "" {
		user.Avatar = avatar
	}
	if role != "" {
		user.Role = role
	}
	return nil
}

func (f *fakeUserRepo) SetOffline(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.IsOnline = false
		user.SocketID = ""
		user.LastSeen = time.Now()
	}
	return nil
}

func (f *fakeUserRepo) ResetPresence(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		user.IsOnline = false
		user.SocketID = ""
	}
	return nil
}

func (f *fakeUserRepo) SetRole(_ context.Context, id primitive.ObjectID, roleName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.Role = roleName
		return nil
	}
	return errStore
}

func (f *fakeUserRepo) List(_ context.Context, onlineOnly bool) ([]*usermodels.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]*usermodels.User, 0, len(f.users))
	for _, user := range f.users {
		if onlineOnly && !user.IsOnline {
			continue
		}
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(f.count()), nil
}

func (f *fakeUserRepo) CountOnline(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, user := range f.users {
		if user.IsOnline {
			n++
		}
	}
	return n, nil
}

// fakeMessageRepo is an in-memory MessageRepository with optional per-channel
// insert failures.
type fakeMessageRepo struct {
	mu           sync.Mutex
	messages     []*messagemodels.Message
	failChannels map[string]bool
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{failChannels: make(map[string]bool)}
}

func (f *fakeMessageRepo) Insert(_ context.Context, message *messagemodels.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failChannels[message.Channel] {
		return errStore
	}
	message.ID = primitive.NewObjectID()
	copied := *message
	f.messages = append(f.messages, &copied)
	return nil
}

func (f *fakeMessageRepo) ListByChannel(_ context.Context, channel string, limit, skip int64) ([]*messagemodels.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*messagemodels.Message, 0)
	for _, m := range f.messages {
		if m.Channel == channel {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) ListAll(_ context.Context, limit int64) ([]*messagemodels.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*messagemodels.Message(nil), f.messages...), nil
}

func (f *fakeMessageRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.messages {
		if m.ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeMessageRepo) DeleteByChannel(_ context.Context, channel string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.messages[:0]
	var deleted int64
	for _, m := range f.messages {
		if m.Channel == channel {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	f.messages = kept
	return deleted, nil
}

func (f *fakeMessageRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.messages)), nil
}

func (f *fakeMessageRepo) byChannel(channel string) []*messagemodels.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*messagemodels.Message, 0)
	for _, m := range f.messages {
		if m.Channel == channel {
			out = append(out, m)
		}
	}
	return out
}

// fakeChannelRepo tracks existing channels and counter updates.
type fakeChannelRepo struct {
	mu       sync.Mutex
	channels map[string]*channelmodels.Channel
}

func newFakeChannelRepo(names ...string) *fakeChannelRepo {
	f := &fakeChannelRepo{channels: make(map[string]*channelmodels.Channel)}
	for _, name := range names {
		f.channels[name] = &channelmodels.Channel{
			ID:       primitive.NewObjectID(),
			Name:     name,
			IsActive: true,
		}
	}
	return f
}

func (f *fakeChannelRepo) messageCount(name string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.channels[name]; ok {
		return ch.MessageCount
	}
	return 0
}

func (f *fakeChannelRepo) EnsureDefault(_ context.Context, name, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.channels[name]; !ok {
		f.channels[name] = &channelmodels.Channel{
			ID:          primitive.NewObjectID(),
			Name:        name,
			Description: description,
			IsActive:    true,
		}
	}
	return nil
}

func (f *fakeChannelRepo) List(_ context.Context) ([]*channelmodels.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*channelmodels.Channel, 0, len(f.channels))
	for _, ch := range f.channels {
		copied := *ch
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeChannelRepo) FindByID(_ context.Context, id primitive.ObjectID) (*channelmodels.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.channels {
		if ch.ID == id {
			copied := *ch
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeChannelRepo) FindByName(_ context.Context, name string) (*channelmodels.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.channels[name]; ok {
		copied := *ch
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeChannelRepo) Create(_ context.Context, channel *channelmodels.Channel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	channel.ID = primitive.NewObjectID()
	copied := *channel
	f.channels[channel.Name] = &copied
	return nil
}

func (f *fakeChannelRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, ch := range f.channels {
		if ch.ID == id {
			delete(f.channels, name)
			return nil
		}
	}
	return nil
}

func (f *fakeChannelRepo) RecordMessage(_ context.Context, name string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.channels[name]; ok {
		ch.MessageCount++
		ch.LastMessageAt = at
	}
	return nil
}

func (f *fakeChannelRepo) ResetMessageCount(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch, ok := f.channels[name]; ok {
		ch.MessageCount = 0
	}
	return nil
}
