package spotify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tintin10q/your-spotify-playlist-cover-downloader/internal/model"
)

// fakeAPI serves a fixed listing in pages of the requested size.
type fakeAPI struct {
	playlists []model.Playlist
	failAt    int
	err       error
	calls     []int
	emptyNext bool
}

func (f *fakeAPI) CurrentUser(context.Context) (*model.User, error) {
	return &model.User{ID: "me"}, nil
}

func (f *fakeAPI) User(_ context.Context, id string) (*model.User, error) {
	return &model.User{ID: id}, nil
}

func (f *fakeAPI) ListPlaylists(_ context.Context, _ string, limit, offset int) (*PlaylistPage, error) {
	f.calls = append(f.calls, offset)
	if f.err != nil && offset >= f.failAt {
		return nil, f.err
	}

	if f.emptyNext {
		return &PlaylistPage{Offset: offset, Next: "cursor"}, nil
	}

	end := min(offset+limit, len(f.playlists))
	page := &PlaylistPage{Items: f.playlists[offset:end], Offset: offset}
	if end < len(f.playlists) {
		page.Next = fmt.Sprintf("offset=%d", end)
	}
	return page, nil
}

func makePlaylists(n int, owner func(i int) string) []model.Playlist {
	out := make([]model.Playlist, n)
	for i := range out {
		out[i] = model.Playlist{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Playlist %d", i), OwnerID: owner(i)}
	}
	return out
}

func TestListUserPlaylists_Pagination(t *testing.T) {
	api := &fakeAPI{playlists: makePlaylists(120, func(int) string { return "alice" })}

	got, err := ListUserPlaylists(context.Background(), api, "alice")
	require.NoError(t, err)

	assert.Len(t, got, 120)
	assert.Equal(t, []int{0, 50, 100}, api.calls)
	assert.Equal(t, "p0", got[0].ID)
	assert.Equal(t, "p119", got[119].ID)
}

func TestListUserPlaylists_KeepsOnlyOwnedInOrder(t *testing.T) {
	api := &fakeAPI{playlists: makePlaylists(7, func(i int) string {
		if i%2 == 0 {
			return "alice"
		}
		return "bob"
	})}

	got, err := ListUserPlaylists(context.Background(), api, "alice")
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p0", "p2", "p4", "p6"}, ids)
}

func TestListUserPlaylists_Empty(t *testing.T) {
	api := &fakeAPI{}

	got, err := ListUserPlaylists(context.Background(), api, "alice")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, []int{0}, api.calls)
}

func TestListUserPlaylists_Error(t *testing.T) {
	api := &fakeAPI{
		playlists: makePlaylists(80, func(int) string { return "alice" }),
		failAt:    50,
		err:       ErrUserNotFound,
	}

	_, err := ListUserPlaylists(context.Background(), api, "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestListUserPlaylists_StopsOnEmptyPage(t *testing.T) {
	api := &fakeAPI{emptyNext: true}

	got, err := ListUserPlaylists(context.Background(), api, "alice")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Len(t, api.calls, 1)
}

func TestAPIError(t *testing.T) {
	inner := errors.New("boom")
	err := &APIError{Status: 500, Message: "server error", Err: inner}

	assert.Equal(t, "spotify API error (status 500): server error", err.Error())
	assert.True(t, errors.Is(err, inner))
}
