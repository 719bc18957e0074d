package ecs

import "reflect"

// typeOf 返回 T 的 reflect.Type（T 通常为组件指针类型）
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 泛型版本：获取实体的 T 类型组件
//
//	particle, ok := ecs.GetComponent[*components.ParticleComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// HasComponent 泛型版本：检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// RemoveComponent 泛型版本：移除实体的 T 类型组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// EachLive 按 ID 升序遍历拥有 T 组件且未被标记删除的实体
//
//	ecs.EachLive(em, func(id ecs.EntityID, pc *components.ParticleComponent) { ... })
func EachLive[T any](em *EntityManager, fn func(id EntityID, comp T)) {
	for _, id := range GetEntitiesWith1[T](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		if comp, ok := GetComponent[T](em, id); ok {
			fn(id, comp)
		}
	}
}

// GetEntitiesWith1 查询拥有组件 A 的实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A]())
}

// GetEntitiesWith2 查询同时拥有组件 A、B 的实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A](), typeOf[B]())
}

// GetEntitiesWith3 查询同时拥有组件 A、B、C 的实体
func GetEntitiesWith3[A, B, C any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[A](), typeOf[B](), typeOf[C]())
}
