package svg // import "github.com/tdewolff/svgclean/svg"

import (
	"regexp"
	"sort"

	"github.com/tdewolff/svgclean/dom"
)

// ShortenIDs renames the referenced identifiers to the shortest free names, counting from start. Identifiers with more references get shorter names. Every reference is rewritten along with the defining id attribute. It returns the number of renamed identifiers.
func ShortenIDs(root *dom.Node, start int) int {
	if start < 1 {
		start = 1
	}
	g := Scan(root)

	// the first element in document order defines an id, every element holding an id takes its name
	defined := map[string]*dom.Node{}
	taken := map[string]int{}
	for _, elem := range root.Find(hasAttr("id")) {
		id := elem.ID()
		if _, ok := defined[id]; !ok {
			defined[id] = elem
		}
		taken[id]++
	}

	// referenced identifiers without a defining element keep their name and block it
	ids := []string{}
	dangling := map[string]bool{}
	for _, id := range g.IDs() {
		if _, ok := defined[id]; ok {
			ids = append(ids, id)
		} else {
			dangling[id] = true
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return g.Count(ids[i]) > g.Count(ids[j])
	})

	n := 0
	num := start
	for _, id := range ids {
		name := IntToID(num)
		num++
		for name != id && isTaken(name, taken, dangling) {
			name = IntToID(num)
			num++
		}
		if name == id {
			continue
		}

		if taken[id]--; taken[id] == 0 {
			delete(taken, id)
		}
		taken[name]++
		renameID(defined[id], g.Refs(id), id, name)
		n++
	}
	return n
}

func isTaken(name string, taken map[string]int, dangling map[string]bool) bool {
	return 0 < taken[name] || dangling[name]
}

// IntToID returns the name for num, counting spreadsheet-style a to z, aa to az, ba to bz and so on.
func IntToID(num int) string {
	var name []byte
	for 0 < num {
		num--
		name = append(name, byte('a'+num%26))
		num /= 26
	}
	for i, j := 0, len(name)-1; i < j; i, j = i+1, j-1 {
		name[i], name[j] = name[j], name[i]
	}
	return string(name)
}

// renameID sets the id of elem to idTo and rewrites all references from idFrom to idTo.
func renameID(elem *dom.Node, refs []Reference, idFrom, idTo string) {
	elem.SetAttr("id", idTo)

	replace := func(s string) string {
		return ReplaceReferencedID(s, idFrom, idTo)
	}
	for _, ref := range refs {
		switch ref.Kind {
		case StyleRule:
			ref.Node.ReplaceText(replace)
		case XLink:
			ref.Node.SetAttr(ref.Attr, "#"+idTo)
		case StyleAttribute:
			if val, ok := ref.Node.Attr("style"); ok {
				ref.Node.SetAttr("style", replace(val))
			}
		case PlainAttribute:
			if val, ok := ref.Node.Attr(ref.Attr); ok {
				ref.Node.SetAttr(ref.Attr, replace(val))
			}
		}
	}
}

// ReplaceReferencedID replaces url(#idFrom), with or without quotes and whitespace, by url(#idTo) in s.
func ReplaceReferencedID(s, idFrom, idTo string) string {
	return referenceRegexp(idFrom).ReplaceAllLiteralString(s, "url(#"+idTo+")")
}

func referenceRegexp(id string) *regexp.Regexp {
	return regexp.MustCompile(`url\(\s*['"]?\s*#` + regexp.QuoteMeta(id) + `\s*['"]?\s*\)`)
}
