package command

// Group is a begin/end scope that treats a sequence of commands as one
// undo unit; if any enclosed command fails, every previously applied
// command in the group is undone in reverse order. A Group is itself a Command, so a Stack can push/undo/redo it
// like any other.
type Group struct {
	commands []Command
}

// NewGroup starts an empty command group.
func NewGroup() *Group {
	return &Group{}
}

// Execute runs cmd.Do(). On success cmd joins the group. On failure, every
// command already applied in this group is undone in reverse order and the
// group is left empty.
func (g *Group) Execute(cmd Command) error {
	if err := cmd.Do(); err != nil {
		g.rollback()
		return err
	}
	g.commands = append(g.commands, cmd)
	return nil
}

func (g *Group) rollback() {
	for i := len(g.commands) - 1; i >= 0; i-- {
		g.commands[i].Undo()
	}
	g.commands = nil
}

// Empty reports whether the group has no successfully applied commands.
func (g *Group) Empty() bool { return len(g.commands) == 0 }

// Do re-applies every enclosed command in original order; used when the
// group itself is redone from a Stack.
func (g *Group) Do() error {
	for i, cmd := range g.commands {
		if err := cmd.Do(); err != nil {
			for j := i - 1; j >= 0; j-- {
				g.commands[j].Undo()
			}
			return err
		}
	}
	return nil
}

// Undo reverses every enclosed command in reverse order.
func (g *Group) Undo() error {
	for i := len(g.commands) - 1; i >= 0; i-- {
		if err := g.commands[i].Undo(); err != nil {
			return err
		}
	}
	return nil
}

// Collate never merges: a group is a fixed undo unit once closed.
func (g *Group) Collate(Command) bool { return false }
