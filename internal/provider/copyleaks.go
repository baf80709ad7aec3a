package provider

// Copyleaks returns the spec for the Copyleaks embedded AI scan widget.
// The widget renders its judgment as a div.scan-text-editor-result
// container whose spans carry cl-scan-* attributes; the daily-quota
// refusal renders an app-error-page instead.
func Copyleaks() *Spec {
	return &Spec{
		Name:              "copyleaks",
		URL:               "https://app.copyleaks.com/v1/scan/ai/embedded",
		InputSelector:     "textarea",
		SubmitSelector:    "button",
		ResultSelector:    "div.scan-text-editor-result",
		RateLimitSelector: "app-error-page b",
		WordCountAttr:     "cl-scan-words",
		ProbabilityAttr:   "cl-scan-probability",
		HumanMarkerAttr:   "cl-human-match",
	}
}
