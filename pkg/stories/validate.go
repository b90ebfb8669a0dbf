package stories

// ValidateContent ensures a story carries exactly one content type.
func ValidateContent(input StoryInput) error {
	count := 0
	for _, content := range []string{input.Text, input.Picture, input.Video, input.Link} {
		if content != "" {
			count++
		}
	}

	if count == 0 {
		return &ValidationError{Reason: "story needs text, a picture, a video or a link"}
	}

	if count > 1 {
		return &ValidationError{Reason: "story can only have a single content type"}
	}

	if len([]rune(input.Text)) > MaxTextLength {
		return &ValidationError{Reason: "story text must not be longer than 500 characters"}
	}

	return nil
}
