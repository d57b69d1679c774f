package feed

import "rasana/internal/core/post"

// Content sources for timeline items, i.e. which follow dimension surfaced
// a post.
const (
	SourceUser    = "user"
	SourceGroup   = "group"
	SourceHashtag = "hashtag"
	SourceGeotag  = "geotag"
	SourceDigest  = "digest"
)

// ResolveContentSource tags a fanned-out post with the dimension that
// surfaced it. For single-dimension timelines the dimension is the follow
// type itself. For "all", a post reachable through several graphs is tagged
// by the fixed precedence user > group > hashtag > geotag; digest is the
// fallback for posts promoted outside the viewer's follow graphs.
func ResolveContentSource(followType string, p *post.Post, fanout *FanoutPlan, hashtagIDs []uint64) string {
	if followType != "all" {
		return followType
	}
	if fanout == nil {
		return SourceDigest
	}

	if containsID(fanout.UserIDs, p.UserID) {
		return SourceUser
	}
	if p.GroupID != 0 && containsID(fanout.GroupIDs, p.GroupID) {
		return SourceGroup
	}
	for _, htID := range hashtagIDs {
		if containsID(fanout.HashtagIDs, htID) {
			return SourceHashtag
		}
	}
	if p.GeotagID != 0 && containsID(fanout.GeotagIDs, p.GeotagID) {
		return SourceGeotag
	}
	if p.DigestState != post.DigestNo {
		return SourceDigest
	}
	return SourceDigest
}

func containsID(ids []uint64, id uint64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
