// Package static serves the prebuilt single-page application.
//
// A Dir wraps an fs.FS rooted at the asset directory. Open resolves a URL
// path to a regular file below that root and never escapes it; ServeAsset
// writes a resolved file with a content type from the fixed ContentType
// table; ServeIndex writes the entry document used as the SPA fallback.
package static
