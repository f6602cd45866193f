package messages

// Message identifiers. Every id must exist in locales/en.toml.
const (
	NoticeSuccess = "notice.success"
	NoticeError   = "notice.error"

	ActionCancel = "action.cancel"
	ActionDelete = "action.delete"

	UsersTitle        = "users.title"
	UsersCount        = "users.count"
	UsersLoading      = "users.loading"
	UsersLoadFailed   = "users.load_failed"
	UsersEmpty        = "users.empty"
	UsersRetry        = "users.retry"
	UsersConfirmTitle = "users.confirm_delete.title"
	UsersConfirmBody  = "users.confirm_delete.body"
	UsersDeleted      = "users.deleted"
	UsersDeleteFailed = "users.delete_failed"

	UserTitle          = "user.title"
	UserLoading        = "user.loading"
	UserLoadFailed     = "user.load_failed"
	UserNotFound       = "user.not_found"
	UserConfirmTitle   = "user.confirm_delete.title"
	UserConfirmBody    = "user.confirm_delete.body"
	UserDeleted        = "user.deleted"
	UserDeleteFailed   = "user.delete_failed"
	UserDeleting       = "user.deleting"
	UserSectionContact = "user.section.contact"
	UserSectionAddress = "user.section.address"
	UserSectionCompany = "user.section.company"

	FormTitle       = "form.title"
	FormUnavailable = "form.unavailable"
)
