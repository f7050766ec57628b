package component

import (
	"strings"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/semtheme/internal/document"
)

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("semtheme:element"))

// ElementID returns a stable id for a labelled part of an element. Elements
// with an explicit id reuse it; otherwise the id is derived from the element
// path so repeated runs over the same document agree.
func ElementID(el *document.Element, path, block, part string) string {
	if el != nil && el.ID != "" {
		return el.ID + "-" + part
	}
	sum := uuid.NewSHA1(idNamespace, []byte(path+"#"+part))
	short := strings.ReplaceAll(sum.String(), "-", "")[:10]
	return block + "-" + part + "-" + short
}
