package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	// Правила проверки параметров квартиры
	NonPositiveField        failure.ErrorCode = "NonPositiveField"
	DistrictOutOfRange      failure.ErrorCode = "DistrictOutOfRange"
	LiveAreaExceedsTotal    failure.ErrorCode = "LiveAreaExceedsTotal"
	KitchenAreaExceedsTotal failure.ErrorCode = "KitchenAreaExceedsTotal"
	FloorExceedsTotal       failure.ErrorCode = "FloorExceedsTotal"

	// Модель и датасет
	ModelNotLoaded      failure.ErrorCode = "ModelNotLoaded"
	ModelSchemaMismatch failure.ErrorCode = "ModelSchemaMismatch"
	EmptyDataset        failure.ErrorCode = "EmptyDataset"
	InvalidHyperparams  failure.ErrorCode = "InvalidHyperparams"
	ListingNotPersisted failure.ErrorCode = "ListingNotPersisted"
	InvalidTaskPayload  failure.ErrorCode = "InvalidTaskPayload"
)
