package lesson

import (
	"context"
	"strings"

	"github.com/kurobon/gittutor/internal/git"
	"github.com/kurobon/gittutor/internal/state"
)

// Catalog returns the built-in lessons in teaching order.
func Catalog() []*Lesson {
	return []*Lesson{
		firstSteps(),
		branchingOut(),
		conflictClub(),
		timeMachine(),
		goingRemote(),
		teamFlow(),
	}
}

// run executes setup command lines through the normal dispatcher so
// lesson fixtures take exactly the path user input takes.
func run(s *git.Session, lines ...string) {
	for _, line := range lines {
		git.Dispatch(context.Background(), s, line)
	}
}

func fileContains(r *state.Repo, path, substr string) bool {
	content, ok := r.ReadWorkingFile(path)
	return ok && strings.Contains(content, substr)
}

func headCommit(r *state.Repo) *state.Commit {
	return r.Commits[r.HeadHash()]
}

func isMergeHead(r *state.Repo) bool {
	c := headCommit(r)
	return c != nil && len(c.Parents) >= 2
}

func firstSteps() *Lesson {
	return &Lesson{
		ID:          "first-steps",
		Title:       "First Steps",
		Description: "Create a repository, stage a file and record your first commit.",
		Setup:       func(s *git.Session) {},
		Steps: []Step{
			{
				Title:  "Initialize a repository",
				Prompt: "Turn this empty directory into a Git repository.",
				Hint:   "git init",
				Validate: func(c Context) bool {
					return c.Repo.Initialized
				},
			},
			{
				Title:  "Create a README",
				Prompt: "Write some text into README.md.",
				Hint:   `echo "# My Project" > README.md`,
				Validate: func(c Context) bool {
					return c.Repo.HasWorkingFile("/README.md")
				},
			},
			{
				Title:  "Stage the file",
				Prompt: "Add README.md to the staging area.",
				Hint:   "git add README.md",
				Validate: func(c Context) bool {
					_, staged := c.Repo.Index["/README.md"]
					return staged
				},
			},
			{
				Title:  "Commit",
				Prompt: "Record the staged change with a message.",
				Hint:   `git commit -m "Add README"`,
				Validate: func(c Context) bool {
					return len(c.Repo.CommitOrder) >= 1 && len(c.Repo.Index) == 0
				},
			},
			{
				Title:  "Inspect history",
				Prompt: "Look at the log to see your commit.",
				Hint:   "git log --oneline",
				Validate: func(c Context) bool {
					return strings.HasPrefix(c.Command, "git log") && c.Result.Ok
				},
			},
		},
		Quiz: &Quiz{Questions: []Question{
			{
				Prompt:  "What does the staging area (index) hold?",
				Choices: []string{"A full copy of every commit", "The delta that will become the next commit", "The remote's branches"},
				Answer:  1,
			},
			{
				Prompt:  "What does `git init` do to an already-initialized repo?",
				Choices: []string{"Deletes history", "Fails with an error", "Nothing — it is idempotent"},
				Answer:  2,
			},
		}},
	}
}

func branchingOut() *Lesson {
	return &Lesson{
		ID:          "branching-out",
		Title:       "Branching Out",
		Description: "Create a feature branch, diverge, and merge the work back.",
		Setup: func(s *git.Session) {
			run(s,
				"git init",
				`echo "f = 1" > app.cfg`,
				"git add .",
				`git commit -m "Base configuration"`,
			)
		},
		Steps: []Step{
			{
				Title:  "Create and switch",
				Prompt: "Create a branch named feature and switch to it in one command.",
				Hint:   "git checkout -b feature",
				Validate: func(c Context) bool {
					_, exists := c.Repo.Branches["feature"]
					return exists && c.Repo.CurrentBranch == "feature"
				},
			},
			{
				Title:  "Commit on the branch",
				Prompt: "Change app.cfg and commit the edit on feature.",
				Hint:   `echo "f = 2" > app.cfg ; then add and commit`,
				Validate: func(c Context) bool {
					head := headCommit(c.Repo)
					return c.Repo.CurrentBranch == "feature" && head != nil &&
						head.Branch == "feature" && len(c.Repo.Index) == 0
				},
			},
			{
				Title:  "Back to main",
				Prompt: "Switch back to main.",
				Hint:   "git checkout main",
				Validate: func(c Context) bool {
					return c.Repo.CurrentBranch == "main"
				},
			},
			{
				Title:  "Diverge main",
				Prompt: "Create notes.txt on main and commit it, so the branches diverge.",
				Hint:   `echo "notes" > notes.txt, git add ., git commit -m "Add notes"`,
				Validate: func(c Context) bool {
					head := headCommit(c.Repo)
					return c.Repo.CurrentBranch == "main" && head != nil &&
						head.Files["/notes.txt"] != "" && len(c.Repo.Index) == 0
				},
			},
			{
				Title:  "Merge",
				Prompt: "Merge feature into main.",
				Hint:   "git merge feature",
				Validate: func(c Context) bool {
					return isMergeHead(c.Repo) && c.Repo.Merge == nil
				},
			},
		},
		Quiz: &Quiz{Questions: []Question{
			{
				Prompt:  "When can a merge fast-forward?",
				Choices: []string{"Whenever both branches exist", "When the current head is an ancestor of the incoming head", "Only on the main branch"},
				Answer:  1,
			},
			{
				Prompt:  "How many parents does a true merge commit have?",
				Choices: []string{"Exactly one", "At least two", "Zero"},
				Answer:  1,
			},
		}},
	}
}

func conflictClub() *Lesson {
	return &Lesson{
		ID:          "conflict-club",
		Title:       "Conflict Club",
		Description: "Cause a merge conflict on purpose, then resolve it.",
		Setup: func(s *git.Session) {
			run(s,
				"git init",
				`echo "color = blue" > config`,
				"git add .",
				`git commit -m "Base config"`,
				"git checkout -b feature",
				`echo "color = green" > config`,
				"git add .",
				`git commit -m "Prefer green"`,
				"git checkout main",
				`echo "color = red" > config`,
				"git add .",
				`git commit -m "Prefer red"`,
			)
		},
		Steps: []Step{
			{
				Title:  "Collide",
				Prompt: "Merge feature into main and watch it conflict.",
				Hint:   "git merge feature",
				Validate: func(c Context) bool {
					return c.Repo.Merge != nil && len(c.Repo.Merge.Conflicts) > 0
				},
			},
			{
				Title:  "Resolve the file",
				Prompt: "Edit config so the conflict markers are gone and it says what you want.",
				Hint:   `echo "color = purple" > config`,
				Validate: func(c Context) bool {
					content, ok := c.Repo.ReadWorkingFile("/config")
					return c.Repo.Merge != nil && ok && !strings.Contains(content, "<<<<<<<")
				},
			},
			{
				Title:  "Mark resolved",
				Prompt: "Stage the fixed file to mark the conflict resolved.",
				Hint:   "git add config",
				Validate: func(c Context) bool {
					return c.Repo.Merge != nil && len(c.Repo.Merge.Conflicts) == 0
				},
			},
			{
				Title:  "Conclude the merge",
				Prompt: "Commit to finish the merge.",
				Hint:   `git commit -m "Merge feature"`,
				Validate: func(c Context) bool {
					return c.Repo.Merge == nil && isMergeHead(c.Repo)
				},
			},
		},
		Quiz: &Quiz{Questions: []Question{
			{
				Prompt:  "What do the ======= markers separate?",
				Choices: []string{"Two unrelated files", "Your version and the incoming version", "Staged and unstaged changes"},
				Answer:  1,
			},
			{
				Prompt:  "How do you tell Git a conflicted path is resolved?",
				Choices: []string{"git add <path>", "git resolve <path>", "Delete the file"},
				Answer:  0,
			},
		}},
	}
}

func timeMachine() *Lesson {
	return &Lesson{
		ID:          "time-machine",
		Title:       "Time Machine",
		Description: "Shelve work with stash, rewind with reset, undo with revert.",
		Setup: func(s *git.Session) {
			run(s,
				"git init",
				`echo "v1" > data.txt`,
				"git add .",
				`git commit -m "First version"`,
				`echo "v2" > data.txt`,
				"git add .",
				`git commit -m "Second version"`,
			)
		},
		Steps: []Step{
			{
				Title:  "Stash dirty work",
				Prompt: "Scribble into scratch.txt, then stash it away.",
				Hint:   `echo "wip" > scratch.txt, then git stash`,
				Validate: func(c Context) bool {
					return len(c.Repo.Stash) == 1 && !c.Repo.HasWorkingFile("/scratch.txt")
				},
			},
			{
				Title:  "Bring it back",
				Prompt: "Pop the stash to restore scratch.txt.",
				Hint:   "git stash pop",
				Validate: func(c Context) bool {
					return len(c.Repo.Stash) == 0 && c.Repo.HasWorkingFile("/scratch.txt")
				},
			},
			{
				Title:  "Clean up",
				Prompt: "Remove scratch.txt again so the tree is clean.",
				Hint:   "rm scratch.txt",
				Validate: func(c Context) bool {
					return !c.Repo.IsDirty()
				},
			},
			{
				Title:  "Rewind",
				Prompt: "Hard-reset to the previous commit.",
				Hint:   "git reset --hard HEAD~1",
				Validate: func(c Context) bool {
					head := headCommit(c.Repo)
					return head != nil && head.Message == "First version" &&
						fileContains(c.Repo, "/data.txt", "v1")
				},
			},
			{
				Title:  "Undo by commit",
				Prompt: "Revert the remaining commit so data.txt disappears — without rewriting history.",
				Hint:   "git revert <hash of First version>",
				Validate: func(c Context) bool {
					head := headCommit(c.Repo)
					return head != nil && strings.HasPrefix(head.Message, "Revert") &&
						!c.Repo.HasWorkingFile("/data.txt")
				},
			},
		},
		Quiz: &Quiz{Questions: []Question{
			{
				Prompt:  "After `git reset --hard HEAD~1`, the abandoned commit is…",
				Choices: []string{"Deleted from storage", "Still stored, just unreachable from the branch", "Moved to the stash"},
				Answer:  1,
			},
			{
				Prompt:  "How does revert differ from reset?",
				Choices: []string{"It adds a new commit instead of moving the branch", "It deletes the working tree", "They are identical"},
				Answer:  0,
			},
		}},
	}
}

func goingRemote() *Lesson {
	return &Lesson{
		ID:          "going-remote",
		Title:       "Going Remote",
		Description: "Clone a shared repository and push your own work to it.",
		Setup:       func(s *git.Session) {},
		Steps: []Step{
			{
				Title:  "Clone",
				Prompt: "Clone the course repository: " + state.SeedRemoteURL,
				Hint:   "git clone " + state.SeedRemoteURL,
				Validate: func(c Context) bool {
					return c.Repo.Initialized && c.Repo.Remotes["origin"] == state.SeedRemoteURL &&
						len(c.Repo.CommitOrder) >= 2
				},
			},
			{
				Title:  "Make a change",
				Prompt: "Add yourself to AUTHORS.md and commit it.",
				Hint:   `echo "me" > AUTHORS.md, git add ., git commit -m "Add author"`,
				Validate: func(c Context) bool {
					head := headCommit(c.Repo)
					return head != nil && head.Files["/AUTHORS.md"] != "" && len(c.Repo.Index) == 0
				},
			},
			{
				Title:  "Publish",
				Prompt: "Push your branch and set its upstream.",
				Hint:   "git push -u origin main",
				Validate: func(c Context) bool {
					ev, ok := c.Repo.LastEvent().(state.PushEvent)
					return ok && ev.Branch == "main"
				},
			},
		},
		Quiz: &Quiz{Questions: []Question{
			{
				Prompt:  "What does `git push -u` record besides uploading commits?",
				Choices: []string{"A tag", "The branch's upstream remote and branch", "A stash entry"},
				Answer:  1,
			},
			{
				Prompt:  "After a clone, 'origin' is…",
				Choices: []string{"The default name of the source remote", "A branch", "The first commit"},
				Answer:  0,
			},
		}},
	}
}

// teamFlow's final step compares the current head against the head
// captured when the step started, which is why validators receive the
// checkpoint map.
func teamFlow() *Lesson {
	const pullStep = 2
	return &Lesson{
		ID:          "team-flow",
		Title:       "Team Flow",
		Description: "Stay in sync with a teammate through push and pull.",
		Setup: func(s *git.Session) {
			run(s, "git clone "+state.SeedRemoteURL)
		},
		OnStepComplete: func(step int, s *git.Session) {
			// After the user's push lands, a teammate pushes too, so the
			// next pull has something to fetch.
			if step == 1 {
				if rr, ok := s.Remotes.GetRepo(state.SeedRemoteURL); ok {
					rr.AddCommit(state.DefaultBranch, "Update docs layout", map[string]string{
						"/docs/INDEX.md": "# Docs\n\nStart here.\n",
					})
				}
			}
		},
		Steps: []Step{
			{
				Title:  "Local work",
				Prompt: "Create CHANGELOG.md and commit it.",
				Hint:   `echo "## v0.1" > CHANGELOG.md, git add ., git commit -m "Start changelog"`,
				Validate: func(c Context) bool {
					head := headCommit(c.Repo)
					return head != nil && head.Files["/CHANGELOG.md"] != "" && len(c.Repo.Index) == 0
				},
			},
			{
				Title:  "Share it",
				Prompt: "Push to origin.",
				Hint:   "git push -u origin main",
				Validate: func(c Context) bool {
					_, ok := c.Repo.LastEvent().(state.PushEvent)
					return ok
				},
			},
			{
				Title:  "Catch up",
				Prompt: "A teammate has pushed meanwhile. Pull their work.",
				Hint:   "git pull",
				Validate: func(c Context) bool {
					cp, ok := c.Checkpoints[pullStep]
					if !ok {
						return false
					}
					startHead := cp.Branches[cp.CurrentBranch]
					return c.Repo.HeadHash() != startHead &&
						c.Repo.HasWorkingFile("/docs/INDEX.md")
				},
			},
		},
		Quiz: &Quiz{Questions: []Question{
			{
				Prompt:  "When does a pull fast-forward?",
				Choices: []string{"When the local head is an ancestor of the remote head", "Always", "Only with -u"},
				Answer:  0,
			},
			{
				Prompt:  "What happens when local and remote histories diverge on pull?",
				Choices: []string{"The pull is refused forever", "The remote branch is merged, possibly with conflicts", "Local commits are discarded"},
				Answer:  1,
			},
		}},
	}
}
