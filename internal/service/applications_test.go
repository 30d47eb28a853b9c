package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripgate/portal-api/internal/domain/model"
	"github.com/tripgate/portal-api/internal/mocks"
	"github.com/tripgate/portal-api/internal/ports"
	"go.uber.org/mock/gomock"
)

// recordingNotifier captures sent notifications.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []ports.Notification
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, notification ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, notification)
	return nil
}

func TestApplicationService_Submit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockApplicationRegistry(ctrl)
	notifier := &recordingNotifier{}
	svc := NewApplicationService(ApplicationServiceOptions{Registry: registry, Notifier: notifier})

	in := model.Application{CompanyName: "Wander Travel", ContactEmail: "owner@wander.example"}
	out := in
	out.ID = "app-1"
	out.Status = model.ApplicationPending
	out.CreatedAt = time.Now()

	registry.EXPECT().Submit(gomock.Any(), in).Return(out, nil)

	got, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "app-1", got.ID)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "owner@wander.example", notifier.sent[0].To)
	assert.Equal(t, "partner-application-received", notifier.sent[0].Template)
	assert.Equal(t, "app-1", notifier.sent[0].Data["application_id"])
}

func TestApplicationService_Submit_NotifierFailureIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockApplicationRegistry(ctrl)
	notifier := &recordingNotifier{err: errors.New("relay down")}
	svc := NewApplicationService(ApplicationServiceOptions{Registry: registry, Notifier: notifier})

	out := model.Application{ID: "app-1", ContactEmail: "owner@wander.example"}
	registry.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(out, nil)

	got, err := svc.Submit(context.Background(), model.Application{CompanyName: "Wander Travel", ContactEmail: "owner@wander.example"})
	require.NoError(t, err)
	assert.Equal(t, "app-1", got.ID)
}

func TestApplicationService_Submit_RegistryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockApplicationRegistry(ctrl)
	notifier := &recordingNotifier{}
	svc := NewApplicationService(ApplicationServiceOptions{Registry: registry, Notifier: notifier})

	registry.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(model.Application{}, errors.New("db down"))

	_, err := svc.Submit(context.Background(), model.Application{CompanyName: "Wander Travel", ContactEmail: "owner@wander.example"})
	require.Error(t, err)
	assert.Empty(t, notifier.sent)
}

func TestApplicationService_Submit_NilNotifier(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockApplicationRegistry(ctrl)
	svc := NewApplicationService(ApplicationServiceOptions{Registry: registry})

	registry.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(model.Application{ID: "app-1"}, nil)

	_, err := svc.Submit(context.Background(), model.Application{CompanyName: "Wander Travel", ContactEmail: "owner@wander.example"})
	require.NoError(t, err)
}

func TestApplicationService_ListByStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := mocks.NewMockApplicationRegistry(ctrl)
	svc := NewApplicationService(ApplicationServiceOptions{Registry: registry})

	apps := []model.Application{{ID: "app-1"}, {ID: "app-2"}}
	registry.EXPECT().ListByStatus(gomock.Any(), model.ApplicationPending).Return(apps, nil)

	got, err := svc.ListByStatus(context.Background(), model.ApplicationPending)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
