package content

import (
	"fmt"
	"regexp"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename returns the download name for a result of this request:
// {contentType}_{topic with whitespace runs replaced by "_"}_age_{ageGroup}.txt
func (r Request) Filename() string {
	return fmt.Sprintf("%s_%s_age_%s.txt",
		r.ContentType, whitespaceRun.ReplaceAllString(r.Topic, "_"), r.AgeGroup)
}
