package models

// Orientasi halaman PDF
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Ukuran font export
const (
	FontSmall  = "small"
	FontMedium = "medium"
	FontLarge  = "large"
)

// Skema warna export
const (
	SchemeColor     = "color"
	SchemeGrayscale = "grayscale"
	SchemeBlack     = "black"
)

// ExportOptions adalah konfigurasi murni untuk formatter, tanpa state
type ExportOptions struct {
	IncludeHeader          bool   `json:"include_header"`
	IncludeFooter          bool   `json:"include_footer"`
	IncludeFacultyInfo     bool   `json:"include_faculty_info"`
	IncludeSubjectDetails  bool   `json:"include_subject_details"`
	IncludeRoomAssignments bool   `json:"include_room_assignments"`
	PageOrientation        string `json:"page_orientation"`
	FontSize               string `json:"font_size"`
	ColorScheme            string `json:"color_scheme"`
}

// DefaultExportOptions mengembalikan konfigurasi default (semua section aktif)
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		IncludeHeader:          true,
		IncludeFooter:          true,
		IncludeFacultyInfo:     true,
		IncludeSubjectDetails:  true,
		IncludeRoomAssignments: false,
		PageOrientation:        OrientationLandscape,
		FontSize:               FontMedium,
		ColorScheme:            SchemeColor,
	}
}

// Validate memastikan semua nilai enum dikenal
func (o ExportOptions) Validate() bool {
	switch o.PageOrientation {
	case OrientationPortrait, OrientationLandscape:
	default:
		return false
	}
	switch o.FontSize {
	case FontSmall, FontMedium, FontLarge:
	default:
		return false
	}
	switch o.ColorScheme {
	case SchemeColor, SchemeGrayscale, SchemeBlack:
	default:
		return false
	}
	return true
}
