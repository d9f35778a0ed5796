package commands

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"raynott/api"
	"raynott/clock"
	"raynott/errors"
	"raynott/models"
)

type fakeSession struct {
	authenticated bool
	admin         bool
	logouts       int
}

func (f *fakeSession) IsAuthenticated() bool { return f.authenticated }
func (f *fakeSession) IsAdmin() bool         { return f.authenticated && f.admin }

func (f *fakeSession) HandleUnauthorized(err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	f.logouts++
	f.authenticated = false
	return true
}

type fakeBackend struct {
	deleted   []string
	updated   map[string]string
	cancelled []string
	err       error
}

func (f *fakeBackend) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) DeleteUser(ctx context.Context, id string) error {
	return f.Delete(ctx, id)
}

func (f *fakeBackend) UpdateStatus(_ context.Context, id, status string) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.updated == nil {
		f.updated = map[string]string{}
	}
	f.updated[id] = status
	return &models.Booking{ID: id, Status: status}, nil
}

func (f *fakeBackend) Cancel(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.cancelled = append(f.cancelled, id)
	return nil
}

var fixedNow = clock.NewFixed(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))

func TestDeleteCommands_RequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		session  *fakeSession
		wantCode errors.ErrorCode
	}{
		{name: "anonymous", session: &fakeSession{}, wantCode: errors.ErrCodeAuthRequired},
		{name: "customer", session: &fakeSession{authenticated: true}, wantCode: errors.ErrCodeForbidden},
		{name: "admin", session: &fakeSession{authenticated: true, admin: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			cmds := []AdminCommand{
				NewDeleteHotelCommand(tt.session, backend, "h1", nil),
				NewDeleteRoomCommand(tt.session, backend, "r1", nil),
				NewDeleteUserCommand(tt.session, backend, "u1", nil),
			}
			for _, cmd := range cmds {
				err := cmd.Execute(context.Background())
				if got := errors.CodeOf(err); got != tt.wantCode {
					t.Fatalf("expected code %q, got %q (%v)", tt.wantCode, got, err)
				}
			}
			wantDeleted := 0
			if tt.wantCode == "" {
				wantDeleted = 3
			}
			if len(backend.deleted) != wantDeleted {
				t.Fatalf("expected %d deletes, got %v", wantDeleted, backend.deleted)
			}
		})
	}
}

func TestDeleteHotelCommand_RemoteErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   errors.ErrorCode
		wantLogout bool
	}{
		{name: "401 logs out", err: &api.HTTPError{Status: http.StatusUnauthorized}, wantCode: errors.ErrCodeAuthRequired, wantLogout: true},
		{name: "403", err: &api.HTTPError{Status: http.StatusForbidden, Message: "Admin only"}, wantCode: errors.ErrCodeForbidden},
		{name: "404", err: &api.HTTPError{Status: http.StatusNotFound, Message: "Hotel not found"}, wantCode: errors.ErrCodeNotFound},
		{name: "500", err: &api.HTTPError{Status: http.StatusInternalServerError}, wantCode: errors.ErrCodeRemote},
		{name: "transport", err: &api.TransportError{Method: "DELETE", Path: "/hotels/h1", Err: context.DeadlineExceeded}, wantCode: errors.ErrCodeNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &fakeSession{authenticated: true, admin: true}
			err := NewDeleteHotelCommand(sess, &fakeBackend{err: tt.err}, "h1", nil).Execute(context.Background())
			if got := errors.CodeOf(err); got != tt.wantCode {
				t.Fatalf("expected %q, got %q (%v)", tt.wantCode, got, err)
			}
			if (sess.logouts == 1) != tt.wantLogout {
				t.Fatalf("expected logout=%v, got %d logouts", tt.wantLogout, sess.logouts)
			}
		})
	}
}

func TestUpdateBookingStatusCommand_Execute(t *testing.T) {
	admin := func() *fakeSession { return &fakeSession{authenticated: true, admin: true} }

	t.Run("valid transition", func(t *testing.T) {
		backend := &fakeBackend{}
		cmd := NewUpdateBookingStatusCommand(admin(), backend, models.Booking{ID: "b1", Status: "pending"}, "confirmed", nil)
		if err := cmd.Execute(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if backend.updated["b1"] != "confirmed" {
			t.Fatalf("expected backend update, got %v", backend.updated)
		}
		if cmd.Result == nil || cmd.Result.Status != "confirmed" {
			t.Fatalf("expected result, got %+v", cmd.Result)
		}
	})

	t.Run("invalid transition never reaches backend", func(t *testing.T) {
		backend := &fakeBackend{}
		err := NewUpdateBookingStatusCommand(admin(), backend, models.Booking{ID: "b1", Status: "cancelled"}, "confirmed", nil).Execute(context.Background())
		if errors.CodeOf(err) != errors.ErrCodeInvalidStatus {
			t.Fatalf("expected INVALID_STATUS_TRANSITION, got %v", err)
		}
		if !stderrors.Is(err, errors.ErrInvalidTransition) {
			t.Fatal("expected errors.Is(ErrInvalidTransition)")
		}
		if len(backend.updated) != 0 {
			t.Fatal("backend must not be called")
		}
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		err := NewUpdateBookingStatusCommand(&fakeSession{authenticated: true}, &fakeBackend{}, models.Booking{ID: "b1", Status: "pending"}, "confirmed", nil).Execute(context.Background())
		if !stderrors.Is(err, errors.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})
}

func TestCancelBookingCommand_Execute(t *testing.T) {
	upcoming := models.Booking{ID: "b1", Status: "confirmed", StartDate: "2024-06-20", EndDate: "2024-06-22"}
	past := models.Booking{ID: "b2", Status: "confirmed", StartDate: "2024-06-01", EndDate: "2024-06-03"}

	tests := []struct {
		name     string
		build    func(*fakeBackend) AdminCommand
		wantCode errors.ErrorCode
		wantHit  bool
	}{
		{
			name: "customer cancels upcoming",
			build: func(b *fakeBackend) AdminCommand {
				return NewCancelOwnBookingCommand(&fakeSession{authenticated: true}, b, upcoming, fixedNow, nil)
			},
			wantHit: true,
		},
		{
			name: "customer cannot cancel past",
			build: func(b *fakeBackend) AdminCommand {
				return NewCancelOwnBookingCommand(&fakeSession{authenticated: true}, b, past, fixedNow, nil)
			},
			wantCode: errors.ErrCodeInvalidStatus,
		},
		{
			name: "anonymous customer must login",
			build: func(b *fakeBackend) AdminCommand {
				return NewCancelOwnBookingCommand(&fakeSession{}, b, upcoming, fixedNow, nil)
			},
			wantCode: errors.ErrCodeAuthRequired,
		},
		{
			name: "admin cancels past",
			build: func(b *fakeBackend) AdminCommand {
				return NewCancelBookingCommand(&fakeSession{authenticated: true, admin: true}, b, past, fixedNow, nil)
			},
			wantHit: true,
		},
		{
			name: "admin cannot cancel twice",
			build: func(b *fakeBackend) AdminCommand {
				cancelled := upcoming
				cancelled.Status = "cancelled"
				return NewCancelBookingCommand(&fakeSession{authenticated: true, admin: true}, b, cancelled, fixedNow, nil)
			},
			wantCode: errors.ErrCodeInvalidStatus,
		},
		{
			name: "admin path rejects customers",
			build: func(b *fakeBackend) AdminCommand {
				return NewCancelBookingCommand(&fakeSession{authenticated: true}, b, upcoming, fixedNow, nil)
			},
			wantCode: errors.ErrCodeForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{}
			err := tt.build(backend).Execute(context.Background())
			if got := errors.CodeOf(err); got != tt.wantCode {
				t.Fatalf("expected %q, got %q (%v)", tt.wantCode, got, err)
			}
			if (len(backend.cancelled) == 1) != tt.wantHit {
				t.Fatalf("expected backend hit=%v, got %v", tt.wantHit, backend.cancelled)
			}
		})
	}
}
