package rastab

import "errors"

var (
	ErrInvalidTif       = errors.New("gdal invalid tif")
	ErrWrongBandCount   = errors.New("tif band count mismatch")
	ErrTifReadFailed    = errors.New("tif read failed")
	ErrGdalDriverCreate = errors.New("gdal driver create err")
	ErrTifWriteFailed   = errors.New("tif write failed")
	ErrInvalidMask      = errors.New("invalid mask file")
	ErrMaskFormat       = errors.New("unsupported mask format")
	ErrMaskSizeMismatch = errors.New("mask size mismatch")
	ErrVoidSrid         = errors.New("void srid in crs")
	ErrEmptyTable       = errors.New("pixel table is empty")
	ErrWrongBandsMode   = errors.New("bands mode should be rgb or rgbn")
)
