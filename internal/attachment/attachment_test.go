package attachment_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"complaint-portal/internal/apperr"
	"complaint-portal/internal/attachment"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTickets(t *testing.T) (*attachment.Tickets, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return attachment.NewTickets(rdb, 10*time.Minute), mr
}

func TestTickets_SingleUse(t *testing.T) {
	tickets, _ := newTickets(t)
	ctx := context.Background()

	token, err := tickets.Issue(ctx, "user-1")
	require.NoError(t, err)

	owner, err := tickets.Redeem(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner)

	_, err = tickets.Redeem(ctx, token)
	assert.ErrorIs(t, err, attachment.ErrTicketInvalid)
}

func TestTickets_Expire(t *testing.T) {
	tickets, mr := newTickets(t)
	ctx := context.Background()

	token, err := tickets.Issue(ctx, "user-1")
	require.NoError(t, err)

	mr.FastForward(11 * time.Minute)

	_, err = tickets.Redeem(ctx, token)
	assert.ErrorIs(t, err, attachment.ErrTicketInvalid)
}

func TestDiskStore_SaveAndOpen(t *testing.T) {
	store, err := attachment.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	blob, err := store.Save(attachment.Blob{Name: "photo.jpg", ContentType: "image/jpeg"}, strings.NewReader("jpeg-bytes"), 1024)
	require.NoError(t, err)
	assert.Equal(t, int64(len("jpeg-bytes")), blob.Size)

	meta, f, err := store.Open(blob.ID)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "photo.jpg", meta.Name)
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))

	_, _, err = store.Open("../../etc/passwd")
	assert.ErrorIs(t, err, attachment.ErrNotFound)
}

func TestDiskStore_RejectsOversizedBody(t *testing.T) {
	store, err := attachment.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(attachment.Blob{Name: "big.bin"}, strings.NewReader("0123456789"), 4)
	assert.ErrorIs(t, err, attachment.ErrTooLarge)
}

func TestService_Handshake(t *testing.T) {
	tickets, _ := newTickets(t)
	store, err := attachment.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	svc := attachment.NewService(tickets, store, "http://portal.test/", 1024)
	ctx := context.Background()

	url, err := svc.UploadURL(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://portal.test/uploads/"))
	token := strings.TrimPrefix(url, "http://portal.test/uploads/")

	blob, err := svc.Accept(ctx, token, "", "", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", blob.OwnerID)
	assert.Equal(t, "attachment", blob.Name)
	assert.Equal(t, "http://portal.test/attachments/"+blob.ID, svc.URL(blob.ID))

	_, err = svc.Accept(ctx, token, "again.txt", "", strings.NewReader("hello"))
	assert.True(t, apperr.Is(err, apperr.NotFound))

	_, err = svc.UploadURL(ctx, "")
	assert.True(t, apperr.Is(err, apperr.Authentication))
}
