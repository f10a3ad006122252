// Package client contains the HTTP building blocks of the feed media
// uploader.
//
// # Overview
//
//  1. AppClient / HTTPClient: the application server contract. Login posts
//     credentials to /login, Elevate posts to /userend with the session
//     token, RequestUploadURL posts the file name to /feedMediaUploadURL with
//     the scoped token. Tokens travel back in the x-sgl-token header and go
//     out as "Authentication: Bearer <token>".
//  2. BlobUploader / StorageClient: a streaming PUT of a local file to a path
//     issued by the server, resolved against the object-storage base URL.
//
// # Error Handling
//
// Each stage has a sentinel error (ErrAuthentication, ErrAuthorization,
// ErrRequest, ErrUpload) that callers match with errors.Is. Non-success HTTP
// answers are *StatusError values; network failures also wrap
// ErrUnavailable.
//
// All calls accept a context.Context and honor cancellation; the shared
// *http.Client carries the per-request timeout.
package client
