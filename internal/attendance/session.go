package attendance

import "strings"

// Session holds the active course name. The entry form is only usable
// while it is non-blank.
type Session struct {
	courseName string
}

func (s *Session) SetCourseName(name string) { s.courseName = name }

func (s *Session) CourseName() string { return s.courseName }

func (s *Session) Active() bool { return strings.TrimSpace(s.courseName) != "" }

func (s *Session) toDTO() SessionResponse {
	return SessionResponse{CourseName: s.courseName, Active: s.Active()}
}
