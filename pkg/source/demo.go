/*
Copyright 2022 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package source

import (
	"context"
	"fmt"
	"time"

	"github.com/jaswdr/faker"

	"github.com/codenotary/sap/pkg/api"
)

// DemoSourceName is the source every demo employee carries.
const DemoSourceName = "hr_system"

// DemoEmployees is the number of employees the demo source serves by
// default.
const DemoEmployees = 3

var demoDepartments = []string{"Engineering", "Design", "Sales", "Marketing", "Support"}

// Demo serves the employee example data set. The first three employees are
// fixed, a larger count appends synthetic ones so load tests have
// something bigger to chew on.
type Demo struct {
	count int
}

// NewDemo returns a demo source serving count employees, at least the
// three fixed ones.
func NewDemo(count int) *Demo {
	if count < DemoEmployees {
		count = DemoEmployees
	}
	return &Demo{count: count}
}

func (d *Demo) Fetch(ctx context.Context) ([]*api.Object, error) {
	objects := demoEmployees()
	if d.count > len(objects) {
		objects = append(objects, syntheticEmployees(len(objects)+1, d.count-len(objects))...)
	}
	return objects, nil
}

func (d *Demo) String() string {
	return fmt.Sprintf("demo(%d employees)", d.count)
}

func demoEmployees() []*api.Object {
	return []*api.Object{
		api.NewObject("emp_001", []string{"person", "employee", "developer"}, DemoSourceName).
			Set("name", "Alice Johnson").
			Set("email", "alice.johnson@company.com").
			Set("department", "Engineering").
			Set("position", "Senior Developer").
			Set("salary", 85000).
			SetTimestamp("hired_at", api.NewTimestamp(time.Date(2022, time.March, 15, 0, 0, 0, 0, time.UTC))).
			Set("skills", []string{"Python", "JavaScript", "React"}).
			SetLink("manager", ".filter(.equals(.get_field('name'), 'Bob Smith'))", "Bob Smith").
			Set("profile_url", "https://company.com/employees/alice-johnson").
			Set("is_active", true),
		api.NewObject("emp_002", []string{"person", "employee", "manager"}, DemoSourceName).
			Set("name", "Bob Smith").
			Set("email", "bob.smith@company.com").
			Set("department", "Engineering").
			Set("position", "Engineering Manager").
			Set("salary", 95000).
			SetTimestamp("hired_at", api.NewTimestamp(time.Date(2021, time.June, 10, 0, 0, 0, 0, time.UTC))).
			Set("skills", []string{"Python", "Leadership", "Project Management"}).
			Set("team_size", 8).
			SetLink("reports_to", ".filter(.equals(.get_field('name'), 'Carol Davis'))", "Carol Davis").
			Set("profile_url", "https://company.com/employees/bob-smith").
			Set("is_active", true),
		api.NewObject("emp_003", []string{"person", "employee", "designer"}, DemoSourceName).
			Set("name", "Carol Davis").
			Set("email", "carol.davis@company.com").
			Set("department", "Design").
			Set("position", "UX Designer").
			Set("salary", 78000).
			SetTimestamp("hired_at", api.NewTimestamp(time.Date(2023, time.January, 20, 0, 0, 0, 0, time.UTC))).
			Set("skills", []string{"Figma", "Adobe Creative Suite", "User Research"}).
			Set("portfolio_url", "https://caroldavis.design").
			Set("profile_url", "https://company.com/employees/carol-davis").
			Set("is_active", true),
	}
}

func syntheticEmployees(firstID, n int) []*api.Object {
	generator := faker.New()
	person := generator.Person()
	internet := generator.Internet()
	company := generator.Company()

	hireBase := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	objects := make([]*api.Object, 0, n)
	for i := 0; i < n; i++ {
		name := person.FirstName() + " " + person.LastName()
		hired := hireBase.AddDate(0, 0, generator.IntBetween(0, 3*365))
		obj := api.NewObject(
			fmt.Sprintf("emp_%03d", firstID+i),
			[]string{"person", "employee"},
			DemoSourceName,
		).
			Set("name", name).
			Set("email", internet.Email()).
			Set("department", demoDepartments[generator.IntBetween(0, len(demoDepartments)-1)]).
			Set("position", company.JobTitle()).
			Set("salary", generator.IntBetween(55000, 130000)).
			SetTimestamp("hired_at", api.NewTimestamp(hired)).
			Set("profile_url", internet.URL()).
			Set("is_active", true)
		objects = append(objects, obj)
	}
	return objects
}
