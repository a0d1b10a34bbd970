package namelist

import (
	gotok "go/token"
	"strings"
)

// Split divides a raw bibtex name-list string, such as the contents of an
// author or editor field, into one raw substring per name. Names are
// separated by the literal word "and"; a trailing "others" is reported via
// the second return value and is not included in the returned names.
func Split(src []byte) (names []string, hasOthers bool, err error) {
	fset := gotok.NewFileSet()
	file := fset.AddFile("", -1, len(src)+1)
	s := &scanner{nameSeps: []string{"and"}, others: []string{"others"}}
	s.init(file, src)

	nameStart := 0
	for {
		before := s.offset
		_, tok, _ := s.scan()
		switch tok {
		case EOF:
			if before > nameStart {
				if seg := strings.TrimSpace(string(src[nameStart:before])); seg != "" {
					names = append(names, seg)
				}
			}
			if s.errors.Len() > 0 {
				return names, hasOthers, s.errors.Err()
			}
			return names, hasOthers, nil
		case NameSep:
			if seg := strings.TrimSpace(string(src[nameStart:before])); seg != "" {
				names = append(names, seg)
			}
			nameStart = s.offset
		case Others:
			hasOthers = true
			nameStart = s.offset
		}
	}
}
