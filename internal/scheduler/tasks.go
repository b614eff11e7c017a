package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAssignmentCycle = "assignment.cycle.run"

const TaskGenerateLeads = "simulation.leads.generate"

const TaskDailyExport = "exports.assignments.daily"

type AssignmentCyclePayload struct {
	TriggeredBy string `json:"triggeredBy"`
}

type GenerateLeadsPayload struct {
	TriggeredBy string `json:"triggeredBy"`
}

// DailyExportPayload selects the day to export. An empty date means the day
// before the task runs.
type DailyExportPayload struct {
	Date string `json:"date,omitempty"`
}

func NewAssignmentCycleTask(payload AssignmentCyclePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAssignmentCycle, data), nil
}

func ParseAssignmentCyclePayload(task *asynq.Task) (AssignmentCyclePayload, error) {
	var payload AssignmentCyclePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AssignmentCyclePayload{}, err
	}
	return payload, nil
}

func NewGenerateLeadsTask(payload GenerateLeadsPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGenerateLeads, data), nil
}

func ParseGenerateLeadsPayload(task *asynq.Task) (GenerateLeadsPayload, error) {
	var payload GenerateLeadsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return GenerateLeadsPayload{}, err
	}
	return payload, nil
}

func NewDailyExportTask(payload DailyExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailyExport, data), nil
}

func ParseDailyExportPayload(task *asynq.Task) (DailyExportPayload, error) {
	var payload DailyExportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DailyExportPayload{}, err
	}
	return payload, nil
}
