// Package shoutcast reads ICY/Shoutcast streams and exposes their metadata.
//
// It started as a fork of github.com/romantomjak/shoutcast and adds:
//   - Playlist resolution: .pls and .m3u URLs are followed to the stream URL
//   - Metadata stripping: inline ICY metadata blocks are parsed and removed so
//     Read only returns audio bytes
//   - Header capture: every icy-* response header is kept on the Stream
//   - A nowplaying.Strategy that reports the current StreamTitle
package shoutcast
