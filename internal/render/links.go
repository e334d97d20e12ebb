package render

import (
	"net/url"
	"strconv"
	"strings"

	"alertdash/internal/config"
)

// Links builds outbound URLs to the bug tracker, the probe explorer and the
// revision viewer.
type Links struct {
	bugTracker    string
	probeExplorer string
	revision      string
}

// NewLinks creates link builders from the configured base URLs
func NewLinks(cfg config.LinksConfig) Links {
	return Links{
		bugTracker:    cfg.BugTracker,
		probeExplorer: strings.TrimRight(cfg.ProbeExplorer, "/"),
		revision:      cfg.Revision,
	}
}

// Bug links to a bug by id.
func (l Links) Bug(id int64) string {
	return withParam(l.bugTracker, "id", strconv.FormatInt(id, 10))
}

// Probe links to the exploration view of a probe on a platform.
func (l Links) Probe(probe, platform string) string {
	if l.probeExplorer == "" {
		return ""
	}
	return l.probeExplorer + "/" + url.PathEscape(probe) + "/explore?os=" + url.QueryEscape(platform)
}

// Revision links to the jobs view of a pushed revision.
func (l Links) Revision(rev string) string {
	return withParam(l.revision, "revision", rev)
}

func withParam(base, key, value string) string {
	if base == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
