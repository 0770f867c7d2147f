package committer

import "cloud.google.com/go/spanner"

// Plan collects the mutations of one logical write. Nil mutations are ignored.
type Plan struct {
	mutations []*spanner.Mutation
}

func NewPlan(ms ...*spanner.Mutation) *Plan {
	p := &Plan{mutations: make([]*spanner.Mutation, 0, len(ms))}
	p.Add(ms...)
	return p
}

func (p *Plan) Add(ms ...*spanner.Mutation) {
	for _, m := range ms {
		if m == nil {
			continue
		}
		p.mutations = append(p.mutations, m)
	}
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}
