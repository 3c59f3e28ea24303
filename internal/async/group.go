package async

import "sync"

// Group tracks a set of jobs so a follow-up job can run after all of them.
type Group struct {
	d  *Dispatcher
	wg sync.WaitGroup
}

// Group returns a new empty Group on d.
func (d *Dispatcher) Group() *Group {
	return &Group{d: d}
}

// Go schedules job as part of the group.
func (g *Group) Go(name string, job Job) error {
	g.wg.Add(1)
	err := g.d.goAfter(name, nil, g.wg.Done, job)
	if err != nil {
		g.wg.Done()
	}
	return err
}

// Then schedules job to run once every job of the group has finished,
// whether it failed or not. It does not hold a worker slot while waiting.
func (g *Group) Then(name string, job Job) error {
	return g.d.goAfter(name, g.wg.Wait, nil, job)
}
