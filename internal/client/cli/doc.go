// Package cli is the uploader's command-line front end. It turns a loaded
// config.Config into one run of services.UploadService, prompting for the
// handle and password when they were not given, and maps the outcome to an
// exit code.
package cli
