package legacy

// Page is the value of the legacy page parameter.
type Page string

// Pages with a modern equivalent.
const (
	PagePostings   Page = "Postings"
	PageShowUser   Page = "ShowUser"
	PageUserRecent Page = "UserRecent"
	PageThreads    Page = "Threads"
)

// Pages that served files or feeds. They have no modern equivalent.
const (
	PageGetAttachment      Page = "GetAttachment"
	PageGetAttachmentThumb Page = "GetAttachmentThumb"
	PageGetAvatar          Page = "GetAvatar"
	PageGetImage           Page = "GetImage"
	PageGetRecent          Page = "GetRecent"
)

// Query parameter names.
const (
	ParamPage   = "page"
	ParamThread = "thread"
	ParamPost   = "post"
	ParamUser   = "user"
	ParamForum  = "forum"
)

// IsResource reports whether the page served a non-HTML resource.
func (p Page) IsResource() bool {
	switch p {
	case PageGetAttachment, PageGetAttachmentThumb, PageGetAvatar, PageGetImage, PageGetRecent:
		return true
	}
	return false
}
