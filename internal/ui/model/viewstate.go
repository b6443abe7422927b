package model

// Page is a complete standalone screen occupying everything but the header and footer.
type Page int

const (
	PageDashboard Page = iota
	PageConfig
	PageHelp
)

// ViewState tracks the common ui states that are shared between many models.
type ViewState struct {
	Page Page

	// --------- h
	// | Header| e
	// |-------- i
	// |Content| g
	// |-------- h
	// | Footer| t
	// W i d t h
	Content int
	Height  int
	Width   int
}
