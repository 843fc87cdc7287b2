// internal/system/groups.go
package system

import (
	"slices"

	"shooterx/internal/component"
	"shooterx/internal/config"
	"shooterx/internal/logger"
	"shooterx/internal/types"
	"shooterx/internal/utils"
)

// GroupCoordinator clusters fresh spawns into roaming squads and keeps
// followers on their leader's roam target.
type GroupCoordinator struct {
	groups   map[int]*component.Group
	memberOf map[types.EntityID]int
	nextID   int
	rng      utils.Random
	tuning   config.GroupTuning
}

func NewGroupCoordinator(rng utils.Random, tuning config.GroupTuning) *GroupCoordinator {
	return &GroupCoordinator{
		groups:   make(map[int]*component.Group),
		memberOf: make(map[types.EntityID]int),
		nextID:   1,
		rng:      rng,
		tuning:   tuning,
	}
}

// OnSpawn offers a fresh enemy for grouping. The type's group chance
// decides whether it groups at all; elites never do. A grouping enemy
// joins a nearby group holding its own type with the join-existing
// chance, and founds a new group otherwise.
func (c *GroupCoordinator) OnSpawn(e *component.Enemy) {
	if e == nil || !e.Alive || e.Def.Elite || e.Def.GroupChance <= 0 {
		return
	}
	if _, grouped := c.memberOf[e.ID]; grouped {
		return
	}
	if c.rng.Float64() >= e.Def.GroupChance {
		return
	}

	candidates := c.nearbyGroups(e)
	if len(candidates) > 0 && c.rng.Float64() < c.tuning.JoinExistingChance {
		g := candidates[c.rng.Intn(len(candidates))]
		c.join(g, e)
		logger.With("groups").Debug("enemy joined group", "enemy", e.ID, "type", e.Type, "group", g.ID)
		return
	}

	g := &component.Group{ID: c.nextID}
	c.nextID++
	c.groups[g.ID] = g
	c.join(g, e)
	g.Leader = e
	e.FollowsLeader = false
	logger.With("groups").Debug("enemy founded group", "enemy", e.ID, "type", e.Type, "group", g.ID)
}

// nearbyGroups returns, in id order, the groups with a live member of
// e's type within the join radius.
func (c *GroupCoordinator) nearbyGroups(e *component.Enemy) []*component.Group {
	var out []*component.Group
	for _, id := range c.sortedIDs() {
		g := c.groups[id]
		for _, m := range g.Members {
			if m.Alive && m.Type == e.Type && m.Position.DistanceXZ(e.Position) <= c.tuning.JoinRadius {
				out = append(out, g)
				break
			}
		}
	}
	return out
}

func (c *GroupCoordinator) join(g *component.Group, e *component.Enemy) {
	g.Members = append(g.Members, e)
	c.memberOf[e.ID] = g.ID
	e.GroupID = g.ID
	e.FollowsLeader = g.Leader != nil
}

// Update prunes dead members, drops empty groups, promotes a new leader
// when the old one is gone, and pushes a roaming leader's target to the
// other roaming members with a small random offset each.
func (c *GroupCoordinator) Update() {
	for _, id := range c.sortedIDs() {
		g := c.groups[id]

		alive := g.Members[:0]
		for _, m := range g.Members {
			if m.Alive {
				alive = append(alive, m)
				continue
			}
			c.release(m)
		}
		clear(g.Members[len(alive):])
		g.Members = alive

		if len(g.Members) == 0 {
			delete(c.groups, id)
			continue
		}

		if g.Leader == nil || !g.Leader.Alive || !g.Has(g.Leader) {
			g.Leader = g.Members[0]
			g.Leader.FollowsLeader = false
			for _, m := range g.Members[1:] {
				m.FollowedSeq = 0
			}
			logger.With("groups").Debug("group leader promoted", "group", id, "leader", g.Leader.ID)
		}

		c.propagate(g)
	}
}

func (c *GroupCoordinator) propagate(g *component.Group) {
	leader := g.Leader
	if leader.State != component.Roaming || !leader.HasRoamTarget {
		return
	}
	for _, m := range g.Members {
		if m == leader || m.State != component.Roaming || m.FollowedSeq == leader.RoamTargetSeq {
			continue
		}
		m.RoamTarget = component.Vec3{
			X: leader.RoamTarget.X + utils.Range(c.rng, -c.tuning.Jitter, c.tuning.Jitter),
			Y: leader.RoamTarget.Y,
			Z: leader.RoamTarget.Z + utils.Range(c.rng, -c.tuning.Jitter, c.tuning.Jitter),
		}
		m.HasRoamTarget = true
		m.NextRoamChange = leader.NextRoamChange
		m.FollowedSeq = leader.RoamTargetSeq
	}
}

func (c *GroupCoordinator) release(e *component.Enemy) {
	delete(c.memberOf, e.ID)
	e.GroupID = 0
	e.FollowsLeader = false
	e.FollowedSeq = 0
}

// Remove takes e out of its group right away.
func (c *GroupCoordinator) Remove(e *component.Enemy) {
	id, ok := c.memberOf[e.ID]
	if !ok {
		return
	}
	g := c.groups[id]
	g.Members = slices.DeleteFunc(g.Members, func(m *component.Enemy) bool { return m == e })
	c.release(e)
	if len(g.Members) == 0 {
		delete(c.groups, id)
		return
	}
	if g.Leader == e {
		g.Leader = g.Members[0]
		g.Leader.FollowsLeader = false
	}
}

// GroupOf returns the group holding the enemy with the given id.
func (c *GroupCoordinator) GroupOf(id types.EntityID) (*component.Group, bool) {
	gid, ok := c.memberOf[id]
	if !ok {
		return nil, false
	}
	g, ok := c.groups[gid]
	return g, ok
}

// Groups returns the live groups in id order.
func (c *GroupCoordinator) Groups() []*component.Group {
	ids := c.sortedIDs()
	out := make([]*component.Group, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.groups[id])
	}
	return out
}

// Count returns the number of live groups.
func (c *GroupCoordinator) Count() int {
	return len(c.groups)
}

// Reset forgets every group and detaches their members.
func (c *GroupCoordinator) Reset() {
	for _, g := range c.groups {
		for _, m := range g.Members {
			c.release(m)
		}
	}
	c.groups = make(map[int]*component.Group)
	c.memberOf = make(map[types.EntityID]int)
	c.nextID = 1
}

func (c *GroupCoordinator) sortedIDs() []int {
	ids := make([]int, 0, len(c.groups))
	for id := range c.groups {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
