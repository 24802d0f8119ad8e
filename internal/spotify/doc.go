// Package spotify talks to the Spotify Web API.
//
// Two ways to obtain a client are provided:
//
//   - AppClient uses the client credentials grant and can list the public
//     playlists of any user.
//   - Authorize runs the authorization code flow with a local callback
//     listener and lists the playlists of the user who logged in,
//     including private and collaborative ones.
//
// Both return a *Client, which satisfies API. ListUserPlaylists walks every
// page of a listing and keeps only the playlists the given user owns.
//
// Provider errors are mapped onto ErrAuth, ErrUserNotFound and *APIError so
// callers can branch with errors.Is and errors.As.
package spotify
