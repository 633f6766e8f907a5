package site

import "errors"

var ErrNilAssets = errors.New("site: asset directory is required")
