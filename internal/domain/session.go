package domain

import "time"

// StudySession is one recorded (or in-progress) interval of work on a topic.
// EndMS is nil while the session is still running; its effective end then
// tracks the current time until the session is stopped.
type StudySession struct {
	ID         string
	TopicID    string
	TopicTitle string
	Color      ColorCode
	StartMS    int64
	EndMS      *int64
	Status     SessionStatus
	CreatedAt  time.Time
}

// Live reports whether the session is open-ended: either explicitly marked
// active or missing a recorded end time.
func (s StudySession) Live() bool {
	return s.Status == SessionActive || s.EndMS == nil
}

// EffectiveEndMS returns the session end, substituting nowMS for a live
// session.
func (s StudySession) EffectiveEndMS(nowMS int64) int64 {
	if s.EndMS == nil {
		return nowMS
	}
	return *s.EndMS
}

// DurationMS returns the elapsed span of the session as of nowMS.
// Negative spans (malformed records) report as zero.
func (s StudySession) DurationMS(nowMS int64) int64 {
	d := s.EffectiveEndMS(nowMS) - s.StartMS
	if d < 0 {
		return 0
	}
	return d
}
