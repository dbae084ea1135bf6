package timetable

// Store 进程内唯一的课程集合。
// 单写者模型：自身不加锁，由持有者保证调用串行。
type Store struct {
	validator *Validator
	entries   []Entry
}

// NewStore 以外部数据源读取的初始序列构建集合。
// 每条记录都会校验；id 非正或重复时整体失败。
func NewStore(v *Validator, initial []Entry) (*Store, error) {
	seen := make(map[int]bool, len(initial))
	entries := make([]Entry, 0, len(initial))
	for _, e := range initial {
		if e.ID <= 0 {
			return nil, &ValidationError{Fields: []FieldError{{Field: "id", Reason: reasons["positive_id"]}}}
		}
		if seen[e.ID] {
			return nil, &ValidationError{Fields: []FieldError{{Field: "id", Reason: reasons["unique_id"]}}}
		}
		if _, err := v.Validate(e); err != nil {
			return nil, err
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}
	return &Store{validator: v, entries: entries}, nil
}

// Create 校验草稿、分配 id 并追加到集合末尾。草稿自带的 id 被忽略。
func (s *Store) Create(draft Entry) (Entry, error) {
	draft.ID = 0
	if _, err := s.validator.Validate(draft); err != nil {
		return Entry{}, err
	}
	draft.ID = NextID(s.IDs())
	s.entries = append(s.entries, draft)
	return draft, nil
}

// Update 按 id 整体替换已有条目，其余条目位置不变
func (s *Store) Update(e Entry) (Entry, error) {
	idx := s.indexOf(e.ID)
	if idx < 0 {
		return Entry{}, &NotFoundError{ID: e.ID}
	}
	if _, err := s.validator.Validate(e); err != nil {
		return Entry{}, err
	}
	s.entries[idx] = e
	return e, nil
}

// Delete 删除指定 id；不存在时为空操作。返回是否实际删除。
func (s *Store) Delete(id int) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.entries = append(s.entries[:idx:idx], s.entries[idx+1:]...)
	return true
}

// Get 按 id 查找
func (s *Store) Get(id int) (Entry, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Entry{}, false
	}
	return s.entries[idx], true
}

// List 按插入/更新顺序返回全部条目（副本）
func (s *Store) List() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ListByDay 返回指定日按开始时间排序的条目
func (s *Store) ListByDay(day Day) []Entry {
	return ClassesForDay(s.entries, day)
}

// IDs 返回当前所有 id
func (s *Store) IDs() []int {
	ids := make([]int, len(s.entries))
	for i, e := range s.entries {
		ids[i] = e.ID
	}
	return ids
}

// Len 条目数量
func (s *Store) Len() int { return len(s.entries) }

// Clone 返回独立副本，修改副本不影响原集合
func (s *Store) Clone() *Store {
	return &Store{validator: s.validator, entries: s.List()}
}

func (s *Store) indexOf(id int) int {
	if id <= 0 {
		return -1
	}
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
