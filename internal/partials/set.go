package partials

// Set holds the resolved auto-injection content for one run.
//
// It is resolved once at start-up and passed by value into the rewrite
// pipeline; nothing mutates it afterwards.
type Set struct {
	Header string
	Footer string
}

// LoadSet resolves the global header and footer partials.
func LoadSet(r *Resolver) Set {
	return Set{
		Header: r.Read(HeaderFile),
		Footer: r.Read(FooterFile),
	}
}

// Empty reports whether neither header nor footer content is available.
func (s Set) Empty() bool {
	return s.Header == "" && s.Footer == ""
}
