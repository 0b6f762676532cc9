package cst

// Equal reports whether two subtrees are isomorphic: same kinds, same decoded
// values and same shape. Spans and trivia are ignored, so the trees may come
// from different files.
func Equal(a *Nodes, ai NodeID, b *Nodes, bi NodeID) bool {
	type pair struct{ a, b NodeID }
	stack := []pair{{ai, bi}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		na, nb := a.Get(p.a), b.Get(p.b)
		if na == nil || nb == nil {
			if na != nb {
				return false
			}
			continue
		}
		if na.Kind != nb.Kind || !samePayload(a, p.a, b, p.b) {
			return false
		}
		ka, kb := a.Children(p.a), b.Children(p.b)
		if len(ka) != len(kb) {
			return false
		}
		for i := range ka {
			stack = append(stack, pair{ka[i], kb[i]})
		}
	}
	return true
}

func samePayload(a *Nodes, ai NodeID, b *Nodes, bi NodeID) bool {
	switch a.Get(ai).Kind {
	case NodeBoolean:
		x, _ := a.Boolean(ai)
		y, _ := b.Boolean(bi)
		return x.Value == y.Value
	case NodeCharacter:
		x, _ := a.Character(ai)
		y, _ := b.Character(bi)
		return x.Value == y.Value
	case NodeString:
		x, _ := a.String(ai)
		y, _ := b.String(bi)
		return x.Value == y.Value
	case NodeNumber:
		x, _ := a.Number(ai)
		y, _ := b.Number(bi)
		return x.Lit == y.Lit
	case NodeSymbol, NodeXtlangType, NodeGenericIdentifier:
		x, _ := a.Name(ai)
		y, _ := b.Name(bi)
		return x == y
	case NodeTypedIdentifier:
		x, _ := a.TypedIdentifier(ai)
		y, _ := b.TypedIdentifier(bi)
		return a.Interner.MustLookup(x.Name) == b.Interner.MustLookup(y.Name) &&
			a.Interner.MustLookup(x.Type) == b.Interner.MustLookup(y.Type)
	case NodeList:
		x, _ := a.List(ai)
		y, _ := b.List(bi)
		return x.Tail.IsValid() == y.Tail.IsValid()
	}
	return true
}
