package commands

import (
	"fmt"
)

func init() {
	Register(&Command{
		Name:        "list",
		Kind:        KindList,
		Description: "List all tasks, optionally only those in one state",
		Example:     "task-tracker list in-progress",
		Params: []Param{
			{Name: "state", Type: ParamTypeFilter, Description: "Only list tasks in this state", Required: false},
		},
		Handler: func(req *Request) error {
			tasks := GetStore().GetTasks(req.Filter)
			if len(tasks) == 0 {
				fmt.Fprintln(output, "No tasks found.")
				return nil
			}
			for _, t := range tasks {
				printTask(output, t)
			}
			return nil
		},
	})

	Register(&Command{
		Name:        "add",
		Kind:        KindAdd,
		Description: "Add one task",
		Example:     "task-tracker add 'Buy 3 eggs.'",
		Params: []Param{
			{Name: "task", Type: ParamTypeText, Description: "The task text", Required: true},
		},
		Handler: func(req *Request) error {
			id, err := GetStore().AddTask(req.Text)
			if err != nil {
				return fmt.Errorf("failed to add task: %w", err)
			}
			fmt.Fprintf(output, "Task added with id #%d.\n", id)
			return nil
		},
	})

	Register(&Command{
		Name:        "show",
		Kind:        KindShow,
		Description: "Show one task",
		Example:     "task-tracker show 1",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "The id of the task", Required: true},
		},
		Handler: func(req *Request) error {
			task, ok := GetStore().GetTask(req.ID)
			if !ok {
				fmt.Fprintf(output, "No task found with id %d\n", req.ID)
				return nil
			}
			printTask(output, task)
			return nil
		},
	})

	Register(&Command{
		Name:        "update",
		Kind:        KindUpdate,
		Description: "Replace a task's text",
		Example:     "task-tracker update 1 'Buy 3 eggs and 1 milk.'",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "The id of the task", Required: true},
			{Name: "updated_task", Type: ParamTypeText, Description: "The new task text", Required: true},
		},
		Handler: func(req *Request) error {
			ok, err := GetStore().UpdateTask(req.ID, req.Text)
			if err != nil {
				return fmt.Errorf("failed to update task #%d: %w", req.ID, err)
			}
			printStatus(output, ok, "update", req.ID)
			return nil
		},
	})

	Register(&Command{
		Name:        "delete",
		Kind:        KindDelete,
		Description: "Delete a task",
		Example:     "task-tracker delete 1",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "The id of the task", Required: true},
		},
		Handler: func(req *Request) error {
			ok, err := GetStore().RemoveTask(req.ID)
			if err != nil {
				return fmt.Errorf("failed to delete task #%d: %w", req.ID, err)
			}
			printStatus(output, ok, "delete", req.ID)
			return nil
		},
	})

	Register(&Command{
		Name:        "mark",
		Kind:        KindMark,
		Description: "Mark a task as 'not-started', 'in-progress' or 'done'",
		Example:     "task-tracker mark 1 done",
		Params: []Param{
			{Name: "task_id", Type: ParamTypeID, Description: "The id of the task", Required: true},
			{Name: "state", Type: ParamTypeState, Description: "not-started, in-progress or done", Required: true},
		},
		Handler: func(req *Request) error {
			ok, err := GetStore().SetState(req.ID, req.State)
			if err != nil {
				return fmt.Errorf("failed to mark task #%d: %w", req.ID, err)
			}
			printStatus(output, ok, "mark", req.ID)
			return nil
		},
	})
}
