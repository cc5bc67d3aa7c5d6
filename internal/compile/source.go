package compile

import (
	"github.com/vk/notarium/internal/classes"
	"github.com/vk/notarium/internal/config"
)

// source is one set of documents folded into a compile: the project's own,
// or one dependency's.
type source struct {
	// name identifies the source in logs: its root directory.
	name     string
	local    bool
	include  config.Include
	resolve  []string
	preamble string
	docs     []*config.Document
	// declared[d][a] is the article registered for docs[d].Articles[a].
	declared [][]classes.ArticleID
	// aliases maps the original keys of classes renamed by obfuscation.
	// They stay reachable from inside the source only.
	aliases map[string]classes.ClassID
	// originals holds the pre-obfuscation article keys seen so far.
	originals map[string]struct{}
}

// rendered reports whether the source's documents become pages.
func (s *source) rendered() bool {
	return s.local || s.include == config.IncludeAll
}

// obfuscated reports whether the source's article keys are randomized.
func (s *source) obfuscated() bool {
	return !s.local && s.include == config.IncludeObfuscated
}
