package domain

// Stage is one step in a workflow definition
type Stage struct {
	StageID string `bson:"stageId"`
	Name    string `bson:"name"`
}

// Workflow is an ordered multi-stage routing definition. Stage order is
// positional and is the canonical sequence when a job carries no planned
// stage list of its own.
type Workflow struct {
	WorkflowID string  `bson:"workflowId"`
	Name       string  `bson:"name"`
	Version    int     `bson:"version"`
	Stages     []Stage `bson:"stages"`
}

// StageName resolves a stage id to its display name across a workflow
// catalog, falling back to the raw id when no definition matches.
func StageName(workflows []*Workflow, stageID string) string {
	for _, wf := range workflows {
		for _, stage := range wf.Stages {
			if stage.StageID == stageID {
				return stage.Name
			}
		}
	}
	return stageID
}

// stageSequence returns the effective ordered stage ids for a job: its own
// planned list when present, otherwise the stages of its workflow (or the
// first workflow in the catalog).
func stageSequence(j *Job, workflows []*Workflow) []string {
	if len(j.PlannedStageIDs) > 0 {
		return j.PlannedStageIDs
	}

	var wf *Workflow
	for _, candidate := range workflows {
		if candidate.WorkflowID == j.WorkflowID {
			wf = candidate
			break
		}
	}
	if wf == nil && len(workflows) > 0 {
		wf = workflows[0]
	}
	if wf == nil {
		return nil
	}

	ids := make([]string, 0, len(wf.Stages))
	for _, stage := range wf.Stages {
		ids = append(ids, stage.StageID)
	}
	return ids
}

// NextStageID returns the stage immediately after the job's current stage
// in its effective sequence. The second result is false when the current
// stage is last or cannot be found.
func NextStageID(j *Job, workflows []*Workflow) (string, bool) {
	seq := stageSequence(j, workflows)
	for i, id := range seq {
		if id == j.CurrentStageID {
			if i+1 < len(seq) {
				return seq[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// IsLastStage reports whether the job sits at the final stage of its
// effective sequence.
func IsLastStage(j *Job, workflows []*Workflow) bool {
	seq := stageSequence(j, workflows)
	if len(seq) == 0 {
		return false
	}
	for i, id := range seq {
		if id == j.CurrentStageID {
			return i == len(seq)-1
		}
	}
	return false
}
