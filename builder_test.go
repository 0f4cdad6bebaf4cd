// SPDX-License-Identifier: MIT
package arbor

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestBuildSource_Build(t *testing.T) {
	type args struct {
		ctx context.Context
	}

	tests := []struct {
		name       string
		list       []Builder[string]
		args       args
		wantValues []string
		wantErr    error
	}{
		{
			name:       "valid",
			list:       []Builder[string]{&DefaultBuilder{value: "1", parent: ""}},
			args:       args{context.Background()},
			wantValues: []string{"1"},
		},
		{
			name: "valid unordered",
			list: []Builder[string]{
				&DefaultBuilder{value: "2", parent: "1"},
				&DefaultBuilder{value: "1", parent: ""},
				&DefaultBuilder{value: "3", parent: "2"},
			},
			args:       args{context.Background()},
			wantValues: []string{"1", "2", "3"},
		},
		{
			name:    "missing root node",
			list:    []Builder[string]{&DefaultBuilder{value: "1", parent: "3"}},
			args:    args{context.Background()},
			wantErr: ErrMissingRootNode,
		},
		{
			name: "multiple root nodes",
			list: []Builder[string]{
				&DefaultBuilder{value: "1", parent: ""},
				&DefaultBuilder{value: "2", parent: ""},
			},
			args:    args{context.Background()},
			wantErr: ErrMultipleRootNodes,
		},
		{
			name:    "empty source",
			list:    []Builder[string]{},
			args:    args{context.Background()},
			wantErr: ErrEmptyTreeSrc,
		},
		{
			name: "unresolvable parent",
			list: []Builder[string]{
				&DefaultBuilder{value: "1", parent: ""},
				&DefaultBuilder{value: "2", parent: "9"},
			},
			args:    args{context.Background()},
			wantErr: ErrLocateParents,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuildSource(WithBuilders(tt.list))

			gotT, err := b.Build(tt.args.ctx)
			if (err != nil) != (tt.wantErr != nil) {
				t.Fatalf("BuildSource.Build() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("BuildSource.Build() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			gotValues, err := gotT.Values(tt.args.ctx)
			if err != nil {
				t.Fatalf("Tree.Values() error = %v", err)
			}
			if !reflect.DeepEqual(gotValues, tt.wantValues) {
				t.Errorf("BuildSource.Build() = %v, want %v", gotValues, tt.wantValues)
			}
		})
	}
}

func TestBuildSource_Cut(t *testing.T) {
	list := []Builder[string]{
		&DefaultBuilder{value: "1"},
		&DefaultBuilder{value: "2"},
		&DefaultBuilder{value: "3"},
	}

	b := NewBuildSource(WithBuilders(list))
	b.Cut(1)

	if b.Len() != 2 {
		t.Fatalf("BuildSource.Len() = %d, want 2", b.Len())
	}

	want := []string{"1", "3"}
	for index := range b.list {
		if b.list[index].Value() != want[index] {
			t.Errorf("BuildSource.Cut() list[%d] = %v, want %v", index, b.list[index].Value(), want[index])
		}
	}
}
