package identity

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/tigerroots/collective/internal/common"
	"github.com/tigerroots/collective/internal/dbx"
	"github.com/tigerroots/collective/internal/server/repositories/channels"
	"github.com/tigerroots/collective/internal/server/repositories/credentials"
	"github.com/tigerroots/collective/internal/server/repositories/plantings"
	"github.com/tigerroots/collective/internal/server/repositories/stats"
	"github.com/tigerroots/collective/internal/server/repositories/users"
)

type fakeCredentialsRepo struct {
	disabled map[string]bool
}

func (f *fakeCredentialsRepo) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	f.disabled[uid] = disabled
	return nil
}

func (f *fakeCredentialsRepo) Disabled(ctx context.Context, uid string) (bool, error) {
	return f.disabled[uid], nil
}

type fakeRM struct {
	creds *fakeCredentialsRepo
}

func (f *fakeRM) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (f *fakeRM) Users(db dbx.DBTX) users.Repository                  { return nil }
func (f *fakeRM) Plantings(db dbx.DBTX) plantings.Repository          { return nil }
func (f *fakeRM) Channels(db dbx.DBTX) channels.Repository            { return nil }
func (f *fakeRM) Stats(db dbx.DBTX) stats.Repository                  { return nil }
func (f *fakeRM) Credentials(db dbx.DBTX) credentials.Repository      { return f.creds }

func TestResolve_ValidToken(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	p := NewProvider(nil, &fakeRM{}, secret)

	tok, err := GenerateToken("u-1", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	uid, err := p.Resolve(tok)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if uid != "u-1" {
		t.Fatalf("uid = %q, want u-1", uid)
	}
}

func TestResolve_BadTokenIsUnauthenticated(t *testing.T) {
	t.Parallel()

	p := NewProvider(nil, &fakeRM{}, []byte("k"))

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := p.Resolve(tok)
		if !errors.Is(err, common.ErrUnauthenticated) {
			t.Fatalf("Resolve(%q) = %v, want ErrUnauthenticated", tok, err)
		}
	}
}

func TestResolve_EmptySubjectRejected(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	p := NewProvider(nil, &fakeRM{}, secret)

	tok, err := GenerateToken("", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.Resolve(tok); !errors.Is(err, common.ErrUnauthenticated) {
		t.Fatalf("empty user id must not authenticate, got %v", err)
	}
}

func TestDisableBlocksCredential(t *testing.T) {
	t.Parallel()

	creds := &fakeCredentialsRepo{disabled: map[string]bool{}}
	p := NewProvider(nil, &fakeRM{creds: creds}, []byte("k"))
	ctx := context.Background()

	got, err := p.Disabled(ctx, "u-1")
	if err != nil || got {
		t.Fatalf("fresh user must be enabled, got %v %v", got, err)
	}

	if err := p.Disable(ctx, "u-1"); err != nil {
		t.Fatal(err)
	}

	got, err = p.Disabled(ctx, "u-1")
	if err != nil || !got {
		t.Fatalf("disabled user must report disabled, got %v %v", got, err)
	}
}
