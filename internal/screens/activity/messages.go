package activity

// transcriptMsg is sent when a recorded answer has been transcribed.
type transcriptMsg struct {
	Text string
	Err  error
}
