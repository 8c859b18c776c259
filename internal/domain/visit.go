package domain

// VisitRequest is the raw capture of one redirect, appended to the visit log
// as-is. Geo enrichment happens downstream of the capture.
type VisitRequest struct {
	URLID      int64
	IPAddress  string
	UserAgent  string
	Referer    string
	DeviceType string
}
