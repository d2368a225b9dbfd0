// Package media defines the file model shared by the pairing engine and
// scans input directories into it. Classification is by extension only:
// jpg/jpeg/png/heic/heif are photos, mp4/mov/m4v/avi are videos, anything
// else is skipped silently.
package media
